package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/logging"
)

// BreakerSettings tunes a Breaker.
type BreakerSettings struct {
	// MaxFailures is the number of consecutive failures tolerated; one more opens the breaker.
	MaxFailures int
	// OpenTimeout is how long the breaker stays open before letting a trial call through.
	OpenTimeout time.Duration
}

// Breaker wraps a Backend in a circuit breaker. While open, calls fail
// immediately without reaching the backend.
type Breaker struct {
	backend Backend
	cb      *gobreaker.CircuitBreaker
}

// NewBreaker wraps backend. Zero settings use 3 failures and 30s.
func NewBreaker(backend Backend, settings BreakerSettings, logger *logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.NopLogger()
	}
	maxFailures := settings.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 3
	}
	timeout := settings.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(backend.Name()),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > uint32(maxFailures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"backend", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return &Breaker{backend: backend, cb: cb}
}

// Name implements Backend.
func (b *Breaker) Name() BackendName { return b.backend.Name() }

// State reports the breaker state for status displays.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// GenerateSubsteps implements coach.Capability.
func (b *Breaker) GenerateSubsteps(ctx context.Context, content string) ([]string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.backend.GenerateSubsteps(ctx, content)
	})
	if err != nil {
		return nil, b.wrap("generate substeps", err)
	}
	return res.([]string), nil
}

// Reply implements coach.Capability.
func (b *Breaker) Reply(ctx context.Context, history []coach.Message, text string) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.backend.Reply(ctx, history, text)
	})
	if err != nil {
		return "", b.wrap("reply", err)
	}
	return res.(string), nil
}

func (b *Breaker) wrap(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.NewCapabilityError(op, fmt.Errorf("%w: %w", errors.ErrCapabilityUnavailable, err)).
			WithBackend(string(b.backend.Name()))
	}
	return err
}
