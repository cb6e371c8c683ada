// Package errors provides centralized error definitions and error handling utilities
// for the Cerebro codebase. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - CapacityError: a board move rejected by the column capacity rule
//   - CapabilityError: the generative-language capability failed or is unavailable
//   - StorageError: the persistence adapter failed to read or write state
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewCapacityError("urgent", 3)
//	err := errors.NewCapabilityError("generate substeps", baseErr).WithBackend("gemini")
//	err := errors.NewValidationError("task content is empty").WithField("content")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrColumnFull) { ... }
//
//	var capErr *errors.CapacityError
//	if errors.As(err, &capErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Validation rejections and capacity rejections are user-facing warnings; they are shown
// as transient messages and never logged as errors. Capability and storage failures are
// internal: they are absorbed at the collaborator boundary and replaced with a fallback.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Board-related sentinel errors
var (
	// ErrTaskNotFound indicates that a task could not be found.
	ErrTaskNotFound = New("task not found")
	// ErrEmptyContent indicates that task or message text was empty after trimming.
	ErrEmptyContent = New("content is empty")
	// ErrColumnFull indicates that a column is at capacity.
	ErrColumnFull = New("column is full")
	// ErrUnknownColumn indicates an unrecognized column identifier.
	ErrUnknownColumn = New("unknown column")
	// ErrBusy indicates that an external request is already outstanding.
	ErrBusy = New("another request is in progress")
)

// Collaborator-related sentinel errors
var (
	// ErrCapabilityUnavailable indicates that no generative-language backend is configured.
	ErrCapabilityUnavailable = New("capability unavailable")
	// ErrMalformedResponse indicates that the capability returned unusable data.
	ErrMalformedResponse = New("malformed capability response")
	// ErrStateCorrupted indicates that persisted state could not be decoded.
	ErrStateCorrupted = New("persisted state corrupted")
	// ErrStateLocked indicates that another process owns the data directory.
	ErrStateLocked = New("state is locked by another process")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNotFound indicates a generic missing resource.
	ErrNotFound = New("not found")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// CerebroError is the base interface for all Cerebro errors.
type CerebroError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// CapacityError reports a move rejected because the target column is full.
// Its Message is the text shown to the user.
//
// Example:
//
//	err := errors.NewCapacityError("urgent", 3)
//	fmt.Println(err) // "capacity error [column=urgent, limit=3]: ..."
type CapacityError struct {
	baseError
	Column string
	Limit  int
	TaskID string
}

// NewCapacityError creates a CapacityError for the given column and limit.
func NewCapacityError(column string, limit int) *CapacityError {
	return &CapacityError{
		baseError: baseError{
			message:    fmt.Sprintf("¡ALTO! 🛑 Máximo %d tareas en la zona roja. Termina una antes de añadir otra.", limit),
			cause:      ErrColumnFull,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Column: column,
		Limit:  limit,
	}
}

// WithTaskID records the task whose move was rejected.
func (e *CapacityError) WithTaskID(id string) *CapacityError {
	e.TaskID = id
	return e
}

// Message returns the user-facing warning without the diagnostic prefix.
func (e *CapacityError) Message() string {
	return e.message
}

func (e *CapacityError) Error() string {
	parts := []string{fmt.Sprintf("column=%s", e.Column), fmt.Sprintf("limit=%d", e.Limit)}
	if e.TaskID != "" {
		parts = append(parts, fmt.Sprintf("task=%s", e.TaskID))
	}
	return fmt.Sprintf("capacity error [%s]: %s", strings.Join(parts, ", "), e.message)
}

func (e *CapacityError) Is(target error) bool {
	if _, ok := target.(*CapacityError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// CapabilityError represents a failure of the external generative-language capability.
//
// Example:
//
//	err := errors.NewCapabilityError("generate substeps", ctx.Err()).WithBackend("gemini")
type CapabilityError struct {
	baseError
	Operation string
	Backend   string
}

// NewCapabilityError creates a new CapabilityError.
func NewCapabilityError(operation string, cause error) *CapabilityError {
	return &CapabilityError{
		baseError: baseError{
			message:    operation,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: false,
		},
		Operation: operation,
	}
}

// WithBackend adds the backend name to the error context.
func (e *CapabilityError) WithBackend(name string) *CapabilityError {
	e.Backend = name
	return e
}

func (e *CapabilityError) Error() string {
	prefix := "capability error"
	if e.Backend != "" {
		prefix = fmt.Sprintf("capability error [backend=%s]", e.Backend)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

func (e *CapabilityError) Is(target error) bool {
	if _, ok := target.(*CapabilityError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// StorageError represents a failure of the persistence adapter.
//
// Example:
//
//	err := errors.NewStorageError("save state", ioErr).WithKey("tdah_app_data").WithBackend("file")
type StorageError struct {
	baseError
	Key     string
	Backend string
}

// NewStorageError creates a new StorageError.
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: false,
		},
	}
}

// WithKey adds the storage key to the error context.
func (e *StorageError) WithKey(key string) *StorageError {
	e.Key = key
	return e
}

// WithBackend adds the storage backend name to the error context.
func (e *StorageError) WithBackend(name string) *StorageError {
	e.Backend = name
	return e
}

func (e *StorageError) Error() string {
	var parts []string
	if e.Backend != "" {
		parts = append(parts, fmt.Sprintf("backend=%s", e.Backend))
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("key=%s", e.Key))
	}

	prefix := "storage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("storage error [%s]", strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

func (e *StorageError) Is(target error) bool {
	if _, ok := target.(*StorageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a missing resource.
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s not found", resourceType),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
	}
	return e.message
}

func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if errors.Is(target, ErrNotFound) {
		return true
	}
	if e.ResourceType == "task" && errors.Is(target, ErrTaskNotFound) {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("task content cannot be empty")
//	err = err.WithField("content").WithValue("  ")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Message returns the bare validation message.
func (e *ValidationError) Message() string {
	return e.message
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var cerebroErr CerebroError
	if As(err, &cerebroErr) {
		return cerebroErr.IsUserFacing()
	}
	return false
}

// UserMessage returns the text to show a user for err. Errors that are not
// user-facing collapse to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var capErr *CapacityError
	if As(err, &capErr) {
		return capErr.Message()
	}
	var valErr *ValidationError
	if As(err, &valErr) {
		return valErr.Message()
	}
	if IsUserFacing(err) {
		return err.Error()
	}
	return "Algo salió mal. Inténtalo de nuevo."
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement CerebroError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var cerebroErr CerebroError
	if As(err, &cerebroErr) {
		return cerebroErr.Severity()
	}
	return SeverityError
}

// IsRejection reports whether err is a synchronous validation or capacity rejection.
// Rejections are expected outcomes of user input and are never logged as errors.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	var capErr *CapacityError
	var valErr *ValidationError
	return As(err, &capErr) || As(err, &valErr)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
