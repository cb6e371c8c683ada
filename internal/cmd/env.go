package cmd

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/cerebro/internal/ai"
	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/config"
	"github.com/Iron-Ham/cerebro/internal/logging"
	"github.com/Iron-Ham/cerebro/internal/persist"
	"github.com/Iron-Ham/cerebro/internal/state"
)

// appEnv is everything a command needs to read or change the saved state.
type appEnv struct {
	cfg     *config.Config
	root    *logging.Logger
	logger  *logging.Logger
	store   persist.Store
	ctrl    *state.Controller
	lock    *persist.Lock
	backend ai.Backend
}

type envOptions struct {
	// lock takes the data directory lock for commands that write state.
	lock bool
	// component tags every log line of the command.
	component string
}

// openEnv loads the configuration, opens the configured store and restores
// the saved state into a controller that persists every change.
func openEnv(ctx context.Context, opts envOptions) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	logger := root
	if opts.component != "" {
		logger = root.WithComponent(opts.component)
	}

	env := &appEnv{cfg: cfg, root: root, logger: logger}
	dataDir := cfg.Storage.ResolveDataDir()

	if opts.lock {
		env.lock, err = persist.AcquireLock(dataDir, logger)
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("cerebro is already running: %w", err)
		}
	}

	env.store, err = persist.Open(ctx, persist.Options{
		Backend:     cfg.Storage.Backend,
		DataDir:     dataDir,
		SQLitePath:  cfg.Storage.SQLitePath,
		RedisURL:    cfg.Storage.RedisURL,
		RedisPrefix: cfg.Storage.RedisPrefix,
	})
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	initial, result := persist.LoadState(ctx, env.store, persist.StateKey)
	if result.Reason != nil {
		logger.Warn("using default state", "found", result.Found, "reason", result.Reason.Error())
	}

	env.ctrl = state.NewController(initial,
		state.WithSaver(persist.NewStateWriter(env.store, persist.StateKey)),
		state.WithPolicy(board.Policy{UrgentCapacity: cfg.Board.UrgentCapacity}),
		state.WithLogger(logger),
	)
	return env, nil
}

// newLogger opens the rotating log file, or returns a NopLogger when logging
// is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.New(logging.Options{
		Dir:   cfg.Storage.LogDir(),
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}

// coach builds the coach over the configured AI backend.
func (e *appEnv) coach(ctx context.Context) (*coach.Coach, error) {
	if e.backend == nil {
		backend, err := ai.NewFromConfig(ctx, e.cfg, e.logger)
		if err != nil {
			return nil, err
		}
		e.backend = backend
		if off, ok := backend.(*ai.OfflineBackend); ok {
			e.logger.Info("coach running offline", "reason", off.Reason())
		}
	}
	return coach.New(e.backend,
		coach.WithLogger(e.logger),
		coach.WithTimeout(e.cfg.AI.RequestTimeout),
		coach.WithHistoryLimit(e.cfg.Chat.HistoryLimit),
	), nil
}

// Close releases the store, the lock and the log file. Safe on a partially
// opened env.
func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("failed to close store", "error", err.Error())
		}
	}
	if e.lock != nil {
		if err := e.lock.Release(); err != nil {
			e.logger.Warn("failed to release lock", "error", err.Error())
		}
	}
	_ = e.root.Close()
}
