// Package config provides CLI commands for managing Cerebro configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/cerebro/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View Cerebro configuration",
	Long: `View Cerebro configuration or create a config file.

Settings come from, in increasing priority: built-in defaults, the config
file and CEREBRO_* environment variables (e.g. CEREBRO_AI_BACKEND).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cerebro/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var initForce bool

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}
	writeConfig(out, cfg)
	return nil
}

func writeConfig(w io.Writer, cfg *appconfig.Config) {
	fmt.Fprintln(w, "ai:")
	fmt.Fprintf(w, "  backend: %s\n", cfg.AI.Backend)
	fmt.Fprintf(w, "  model: %s\n", valueOr(cfg.AI.Model, "(backend default)"))
	fmt.Fprintf(w, "  api_key: %s\n", maskSecret(cfg.AI.APIKey))
	fmt.Fprintf(w, "  request_timeout: %s\n", cfg.AI.RequestTimeout)
	fmt.Fprintf(w, "  breaker_failures: %d\n", cfg.AI.BreakerFailures)
	fmt.Fprintf(w, "  breaker_timeout: %s\n", cfg.AI.BreakerTimeout)

	fmt.Fprintln(w, "storage:")
	fmt.Fprintf(w, "  backend: %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  data_dir: %s\n", cfg.Storage.ResolveDataDir())
	fmt.Fprintf(w, "  sqlite_path: %s\n", valueOr(cfg.Storage.SQLitePath, "(data_dir/cerebro.db)"))
	fmt.Fprintf(w, "  redis_url: %s\n", valueOr(cfg.Storage.RedisURL, "(not set)"))
	fmt.Fprintf(w, "  redis_prefix: %s\n", cfg.Storage.RedisPrefix)

	fmt.Fprintln(w, "board:")
	fmt.Fprintf(w, "  urgent_capacity: %d\n", cfg.Board.UrgentCapacity)
	fmt.Fprintf(w, "  toast_duration: %s\n", cfg.Board.ToastDuration)

	fmt.Fprintln(w, "focus:")
	fmt.Fprintf(w, "  duration: %s\n", cfg.Focus.Duration)
	fmt.Fprintf(w, "  bell: %v\n", cfg.Focus.Bell)

	fmt.Fprintln(w, "chat:")
	fmt.Fprintf(w, "  history_limit: %d\n", cfg.Chat.HistoryLimit)

	fmt.Fprintln(w, "logging:")
	fmt.Fprintf(w, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(w, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(w, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(w, "  max_age_days: %d\n", cfg.Logging.MaxAgeDays)
	fmt.Fprintf(w, "  compress: %v\n", cfg.Logging.Compress)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// maskSecret keeps only the last four characters of a key.
func maskSecret(s string) string {
	switch {
	case s == "":
		return "(from environment)"
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s\nUse --force to overwrite it", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/cerebro/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CEREBRO_* (e.g., CEREBRO_FOCUS_DURATION)")
	fmt.Fprintf(out, "API keys are also read from .env and %s\n", filepath.Join(appconfig.ConfigDir(), ".env"))

	return nil
}

const defaultConfigContent = `# Cerebro Configuration

# Coach backend
ai:
  # Options: gemini, anthropic, offline
  # Keys come from GEMINI_API_KEY / ANTHROPIC_API_KEY unless api_key is set.
  # Without a key the coach answers with built-in fallbacks.
  backend: gemini
  # Empty uses the backend's default model
  model: ""
  request_timeout: 30s
  # Consecutive failures before the coach stops calling the backend for a while
  breaker_failures: 3
  breaker_timeout: 30s

# Where tasks, the conversation and progress are kept
storage:
  # Options: file, sqlite, redis
  backend: file
  # Empty means ~/.local/share/cerebro
  data_dir: ""
  sqlite_path: ""
  redis_url: ""
  redis_prefix: "cerebro:"

board:
  # At most 3; lower it if three is still too many
  urgent_capacity: 3
  toast_duration: 3s

focus:
  duration: 15m
  # Ring the terminal bell when a session ends
  bell: true

chat:
  # How many recent messages the coach sees
  history_limit: 10

logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  max_size_mb: 10
  max_backups: 3
  max_age_days: 28
  compress: false
`
