package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/cerebro/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "board.urgent_capacity")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the accepted logging.level values, the lowercase
// forms of logging.ValidLevels.
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}

// MaxUrgentCapacity is the largest allowed board.urgent_capacity.
const MaxUrgentCapacity = 3

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAI()...)
	errors = append(errors, c.validateStorage()...)
	errors = append(errors, c.validateBoard()...)
	errors = append(errors, c.validateFocus()...)
	errors = append(errors, c.validateChat()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAI() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidAIBackends(), strings.ToLower(c.AI.Backend)) {
		errors = append(errors, ValidationError{
			Field:   "ai.backend",
			Value:   c.AI.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidAIBackends(), ", ")),
		})
	}
	if c.AI.RequestTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "ai.request_timeout",
			Value:   c.AI.RequestTimeout,
			Message: "must be non-negative",
		})
	}
	if c.AI.BreakerFailures < 1 {
		errors = append(errors, ValidationError{
			Field:   "ai.breaker_failures",
			Value:   c.AI.BreakerFailures,
			Message: "must be at least 1",
		})
	}
	if c.AI.BreakerTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ai.breaker_timeout",
			Value:   c.AI.BreakerTimeout,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateStorage() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidStorageBackends(), c.Storage.Backend) {
		errors = append(errors, ValidationError{
			Field:   "storage.backend",
			Value:   c.Storage.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidStorageBackends(), ", ")),
		})
	}
	if c.Storage.Backend == "redis" && c.Storage.RedisURL == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.redis_url",
			Value:   c.Storage.RedisURL,
			Message: "required when storage.backend is redis",
		})
	}

	return errors
}

func (c *Config) validateBoard() []ValidationError {
	var errors []ValidationError

	if c.Board.UrgentCapacity < 1 || c.Board.UrgentCapacity > MaxUrgentCapacity {
		errors = append(errors, ValidationError{
			Field:   "board.urgent_capacity",
			Value:   c.Board.UrgentCapacity,
			Message: fmt.Sprintf("must be between 1 and %d", MaxUrgentCapacity),
		})
	}
	if c.Board.ToastDuration < 500*time.Millisecond {
		errors = append(errors, ValidationError{
			Field:   "board.toast_duration",
			Value:   c.Board.ToastDuration,
			Message: "must be at least 500ms",
		})
	}

	return errors
}

func (c *Config) validateFocus() []ValidationError {
	var errors []ValidationError

	if c.Focus.Duration < time.Minute || c.Focus.Duration > 4*time.Hour {
		errors = append(errors, ValidationError{
			Field:   "focus.duration",
			Value:   c.Focus.Duration,
			Message: "must be between 1m and 4h",
		})
	}

	return errors
}

func (c *Config) validateChat() []ValidationError {
	var errors []ValidationError

	if c.Chat.HistoryLimit < 1 || c.Chat.HistoryLimit > 100 {
		errors = append(errors, ValidationError{
			Field:   "chat.history_limit",
			Value:   c.Chat.HistoryLimit,
			Message: "must be between 1 and 100",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxAgeDays < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_age_days",
			Value:   c.Logging.MaxAgeDays,
			Message: "must be non-negative",
		})
	}

	return errors
}
