package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Cerebro configuration
type Config struct {
	AI      AIConfig      `mapstructure:"ai"`
	Storage StorageConfig `mapstructure:"storage"`
	Board   BoardConfig   `mapstructure:"board"`
	Focus   FocusConfig   `mapstructure:"focus"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AIConfig controls the generative-language backend
type AIConfig struct {
	// Backend selects the provider. Options: "gemini", "anthropic", "offline"
	Backend string `mapstructure:"backend"`
	// Model overrides the backend's default model. Empty uses the default.
	Model string `mapstructure:"model"`
	// APIKey overrides the key read from GEMINI_API_KEY / ANTHROPIC_API_KEY.
	APIKey string `mapstructure:"api_key"`
	// RequestTimeout bounds every call (default: 30s, 0 = unbounded)
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// BreakerFailures is how many consecutive failures open the circuit breaker (default: 3)
	BreakerFailures int `mapstructure:"breaker_failures"`
	// BreakerTimeout is how long the breaker stays open before a trial call (default: 30s)
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout"`
}

// StorageConfig controls where application state is persisted
type StorageConfig struct {
	// Backend selects the store. Options: "file", "sqlite", "redis"
	Backend string `mapstructure:"backend"`
	// DataDir holds state, logs and the lock file.
	// Empty means $XDG_DATA_HOME/cerebro (or ~/.local/share/cerebro).
	DataDir string `mapstructure:"data_dir"`
	// SQLitePath is the database file for the sqlite backend. Empty means {data_dir}/cerebro.db
	SQLitePath string `mapstructure:"sqlite_path"`
	// RedisURL is the server for the redis backend, e.g. redis://localhost:6379/0
	RedisURL string `mapstructure:"redis_url"`
	// RedisPrefix namespaces keys in a shared Redis (default: "cerebro:")
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// BoardConfig controls the task board
type BoardConfig struct {
	// UrgentCapacity is the most tasks the urgent column holds (default: 3, max: 3)
	UrgentCapacity int `mapstructure:"urgent_capacity"`
	// ToastDuration is how long warnings stay on screen (default: 3s)
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// FocusConfig controls the focus timer
type FocusConfig struct {
	// Duration is the length of one focus session (default: 15m)
	Duration time.Duration `mapstructure:"duration"`
	// Bell rings the terminal bell when a session ends (default: true)
	Bell bool `mapstructure:"bell"`
}

// ChatConfig controls the chat coach
type ChatConfig struct {
	// HistoryLimit is how many prior messages are sent with each request (default: 10)
	HistoryLimit int `mapstructure:"history_limit"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Enabled writes logs to {data_dir}/logs/cerebro.log (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level logged. Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// MaxSizeMB is the size at which the log rotates (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated logs kept (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAgeDays removes rotated logs older than this (default: 28, 0 = keep)
	MaxAgeDays int `mapstructure:"max_age_days"`
	// Compress gzips rotated logs (default: false)
	Compress bool `mapstructure:"compress"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Backend:         "gemini",
			Model:           "",
			RequestTimeout:  30 * time.Second,
			BreakerFailures: 3,
			BreakerTimeout:  30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:     "file",
			DataDir:     "",
			RedisPrefix: "cerebro:",
		},
		Board: BoardConfig{
			UrgentCapacity: 3,
			ToastDuration:  3 * time.Second,
		},
		Focus: FocusConfig{
			Duration: 15 * time.Minute,
			Bell:     true,
		},
		Chat: ChatConfig{
			HistoryLimit: 10,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// AI defaults
	viper.SetDefault("ai.backend", defaults.AI.Backend)
	viper.SetDefault("ai.model", defaults.AI.Model)
	viper.SetDefault("ai.api_key", defaults.AI.APIKey)
	viper.SetDefault("ai.request_timeout", defaults.AI.RequestTimeout)
	viper.SetDefault("ai.breaker_failures", defaults.AI.BreakerFailures)
	viper.SetDefault("ai.breaker_timeout", defaults.AI.BreakerTimeout)

	// Storage defaults
	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	viper.SetDefault("storage.sqlite_path", defaults.Storage.SQLitePath)
	viper.SetDefault("storage.redis_url", defaults.Storage.RedisURL)
	viper.SetDefault("storage.redis_prefix", defaults.Storage.RedisPrefix)

	// Board defaults
	viper.SetDefault("board.urgent_capacity", defaults.Board.UrgentCapacity)
	viper.SetDefault("board.toast_duration", defaults.Board.ToastDuration)

	// Focus defaults
	viper.SetDefault("focus.duration", defaults.Focus.Duration)
	viper.SetDefault("focus.bell", defaults.Focus.Bell)

	// Chat defaults
	viper.SetDefault("chat.history_limit", defaults.Chat.HistoryLimit)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ResolveDataDir returns the data directory with ~ expanded.
// Empty means the XDG data directory.
func (s *StorageConfig) ResolveDataDir() string {
	if s.DataDir == "" {
		return DefaultDataDir()
	}
	return expandHome(s.DataDir)
}

// LogDir returns the directory holding cerebro.log.
func (s *StorageConfig) LogDir() string {
	return filepath.Join(s.ResolveDataDir(), "logs")
}

// DefaultDataDir returns $XDG_DATA_HOME/cerebro, falling back to
// ~/.local/share/cerebro.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cerebro")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cerebro"
	}
	return filepath.Join(home, ".local", "share", "cerebro")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cerebro")
	}
	// Fall back to ~/.config/cerebro
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cerebro"
	}
	return filepath.Join(home, ".config", "cerebro")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidAIBackends returns the list of valid ai.backend values
func ValidAIBackends() []string {
	return []string{"gemini", "anthropic", "offline"}
}

// ValidStorageBackends returns the list of valid storage.backend values
func ValidStorageBackends() []string {
	return []string{"file", "sqlite", "redis"}
}
