// Package coach turns the generative-language capability into results the
// board and chat can always use. Every call either returns the capability's
// answer or a fixed local fallback; failures never reach the caller.
package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/logging"
)

// Limits on capability traffic.
const (
	// MaxSteps is the most substeps a breakdown may produce.
	MaxSteps = 5
	// DefaultHistoryLimit is how many prior chat messages are sent with a reply request.
	DefaultHistoryLimit = 10
)

// FallbackReply is the coach's answer when the capability cannot respond.
const FallbackReply = "Entiendo que esto sea difícil. Respira profundo. Vamos a intentar hacer solo una cosa pequeña durante 5 minutos. ¿Te parece bien?"

// Role identifies the author of a Message in capability requests.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior turn of the conversation.
type Message struct {
	Role Role
	Text string
}

// Capability is the external generative-language service.
type Capability interface {
	// GenerateSubsteps splits a task into short actionable steps.
	GenerateSubsteps(ctx context.Context, content string) ([]string, error)
	// Reply answers text given the preceding conversation.
	Reply(ctx context.Context, history []Message, text string) (string, error)
}

// Breakdown is the outcome of a decomposition request. Steps is always
// non-empty. Err records why the fallback was used.
type Breakdown struct {
	Steps    []string
	Fallback bool
	Err      error
}

// Answer is the outcome of a chat request. Text is always non-empty.
type Answer struct {
	Text     string
	Fallback bool
	Err      error
}

// Coach wraps a Capability with validation, timeouts and fallbacks.
type Coach struct {
	capability   Capability
	logger       *logging.Logger
	historyLimit int
	timeout      time.Duration
}

// Option configures a Coach.
type Option func(*Coach)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coach) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHistoryLimit sets how many prior messages are sent with a reply request.
func WithHistoryLimit(n int) Option {
	return func(c *Coach) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithTimeout bounds every capability call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Coach) {
		c.timeout = d
	}
}

// New creates a Coach. A nil capability is allowed: every call falls back.
func New(capability Capability, opts ...Option) *Coach {
	c := &Coach{
		capability:   capability,
		logger:       logging.NopLogger(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("coach")
	return c
}

// Breakdown asks the capability to split content into substeps. Entries are
// trimmed, blanks dropped, and at most MaxSteps kept. If the capability is
// missing, fails, panics, or returns nothing usable, the fixed fallback steps
// for content are returned instead.
func (c *Coach) Breakdown(ctx context.Context, content string) Breakdown {
	var steps []string
	err := c.call(ctx, "generate substeps", func(ctx context.Context) error {
		raw, err := c.capability.GenerateSubsteps(ctx, content)
		if err != nil {
			return err
		}
		steps = cleanSteps(raw)
		if len(steps) == 0 {
			return errors.ErrMalformedResponse
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("breakdown failed, using fallback", "error", err.Error())
		return Breakdown{Steps: FallbackSteps(content), Fallback: true, Err: err}
	}
	c.logger.Debug("breakdown succeeded", "steps", len(steps))
	return Breakdown{Steps: steps}
}

// Reply sends text with the most recent prior messages and returns the
// capability's answer, or FallbackReply on any failure.
func (c *Coach) Reply(ctx context.Context, history []Message, text string) Answer {
	if strings.TrimSpace(text) == "" {
		return Answer{Text: FallbackReply, Fallback: true, Err: errors.ErrEmptyContent}
	}
	recent := history
	if len(recent) > c.historyLimit {
		recent = recent[len(recent)-c.historyLimit:]
	}

	var reply string
	err := c.call(ctx, "reply", func(ctx context.Context) error {
		out, err := c.capability.Reply(ctx, recent, text)
		if err != nil {
			return err
		}
		reply = strings.TrimSpace(out)
		if reply == "" {
			return errors.ErrMalformedResponse
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("reply failed, using fallback", "error", err.Error())
		return Answer{Text: FallbackReply, Fallback: true, Err: err}
	}
	return Answer{Text: reply}
}

// call runs fn with the configured timeout and converts panics into errors.
func (c *Coach) call(ctx context.Context, op string, fn func(context.Context) error) (err error) {
	if c.capability == nil {
		return errors.NewCapabilityError(op, errors.ErrCapabilityUnavailable)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewCapabilityError(op, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(ctx); err != nil {
		var capErr *errors.CapabilityError
		if errors.As(err, &capErr) {
			return err
		}
		return errors.NewCapabilityError(op, err)
	}
	return nil
}

func cleanSteps(raw []string) []string {
	steps := make([]string, 0, min(len(raw), MaxSteps))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		steps = append(steps, s)
		if len(steps) == MaxSteps {
			break
		}
	}
	return steps
}

// FallbackSteps returns the fixed four-step plan used when the capability
// cannot break content down.
func FallbackSteps(content string) []string {
	return []string{
		fmt.Sprintf("Paso 1: Abrir documento para \"%s\"", content),
		fmt.Sprintf("Paso 2: Escribir primera frase de \"%s\"", content),
		"Paso 3: Revisar borrador rápido",
		"Paso 4: Finalizar detalles",
	}
}
