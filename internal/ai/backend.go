// Package ai provides the generative-language backends behind the coach.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/config"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/logging"
)

// BackendName identifies a supported AI backend.
type BackendName string

const (
	BackendGemini    BackendName = "gemini"
	BackendAnthropic BackendName = "anthropic"
	BackendOffline   BackendName = "offline"
)

// Backend is a coach.Capability with a name for logs and status lines.
type Backend interface {
	coach.Capability
	Name() BackendName
}

// ErrUnknownBackend is returned when the configured backend is unsupported.
var ErrUnknownBackend = fmt.Errorf("unknown AI backend")

// Environment variables searched for API keys, in order.
var (
	geminiKeyEnv    = []string{"GEMINI_API_KEY", "API_KEY", "GOOGLE_API_KEY"}
	anthropicKeyEnv = []string{"ANTHROPIC_API_KEY"}
)

// NewFromConfig builds a Backend from configuration. Network backends are
// wrapped in a Breaker. A network backend without an API key degrades to the
// offline backend so the coach serves its fallbacks.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing config")
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("ai")

	var backend Backend
	switch BackendName(strings.ToLower(cfg.AI.Backend)) {
	case BackendGemini, "":
		key := lookupKey(cfg.AI.APIKey, geminiKeyEnv)
		if key == "" {
			logger.Info("no Gemini API key, using offline backend")
			return NewOfflineBackend("no Gemini API key"), nil
		}
		var opts []GeminiOption
		if cfg.AI.Model != "" {
			opts = append(opts, WithGeminiModel(cfg.AI.Model))
		}
		gemini, err := NewGeminiBackend(ctx, key, opts...)
		if err != nil {
			return nil, err
		}
		backend = gemini
	case BackendAnthropic:
		key := lookupKey(cfg.AI.APIKey, anthropicKeyEnv)
		if key == "" {
			logger.Info("no Anthropic API key, using offline backend")
			return NewOfflineBackend("no Anthropic API key"), nil
		}
		opts := []AnthropicOption{}
		if cfg.AI.Model != "" {
			opts = append(opts, WithAnthropicModel(cfg.AI.Model))
		}
		if cfg.AI.RequestTimeout > 0 {
			opts = append(opts, WithAnthropicTimeout(cfg.AI.RequestTimeout))
		}
		backend = NewAnthropicBackend(key, opts...)
	case BackendOffline:
		return NewOfflineBackend("offline backend configured"), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.AI.Backend)
	}

	logger.Info("AI backend ready", "backend", string(backend.Name()))
	return NewBreaker(backend, BreakerSettings{
		MaxFailures: cfg.AI.BreakerFailures,
		OpenTimeout: cfg.AI.BreakerTimeout,
	}, logger), nil
}

func lookupKey(explicit string, envs []string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range envs {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// OfflineBackend fails every call immediately.
type OfflineBackend struct {
	reason string
}

// NewOfflineBackend returns a backend whose calls fail with reason.
func NewOfflineBackend(reason string) *OfflineBackend {
	return &OfflineBackend{reason: reason}
}

// Name implements Backend.
func (b *OfflineBackend) Name() BackendName { return BackendOffline }

// Reason reports why the backend is offline.
func (b *OfflineBackend) Reason() string { return b.reason }

// GenerateSubsteps implements coach.Capability.
func (b *OfflineBackend) GenerateSubsteps(context.Context, string) ([]string, error) {
	return nil, b.err("generate substeps")
}

// Reply implements coach.Capability.
func (b *OfflineBackend) Reply(context.Context, []coach.Message, string) (string, error) {
	return "", b.err("reply")
}

func (b *OfflineBackend) err(op string) error {
	return errors.NewCapabilityError(op, fmt.Errorf("%w: %s", errors.ErrCapabilityUnavailable, b.reason)).
		WithBackend(string(BackendOffline))
}
