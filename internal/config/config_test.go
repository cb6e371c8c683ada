package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default AI config
	if cfg.AI.Backend != "gemini" {
		t.Errorf("AI.Backend = %q, want %q", cfg.AI.Backend, "gemini")
	}
	if cfg.AI.RequestTimeout != 30*time.Second {
		t.Errorf("AI.RequestTimeout = %v, want 30s", cfg.AI.RequestTimeout)
	}
	if cfg.AI.BreakerFailures != 3 {
		t.Errorf("AI.BreakerFailures = %d, want 3", cfg.AI.BreakerFailures)
	}

	// Verify default storage config
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, "file")
	}
	if cfg.Storage.RedisPrefix != "cerebro:" {
		t.Errorf("Storage.RedisPrefix = %q, want %q", cfg.Storage.RedisPrefix, "cerebro:")
	}

	// Verify default board config
	if cfg.Board.UrgentCapacity != 3 {
		t.Errorf("Board.UrgentCapacity = %d, want 3", cfg.Board.UrgentCapacity)
	}
	if cfg.Board.ToastDuration != 3*time.Second {
		t.Errorf("Board.ToastDuration = %v, want 3s", cfg.Board.ToastDuration)
	}

	// Verify default focus config
	if cfg.Focus.Duration != 15*time.Minute {
		t.Errorf("Focus.Duration = %v, want 15m", cfg.Focus.Duration)
	}
	if !cfg.Focus.Bell {
		t.Error("Focus.Bell should be true by default")
	}

	if cfg.Chat.HistoryLimit != 10 {
		t.Errorf("Chat.HistoryLimit = %d, want 10", cfg.Chat.HistoryLimit)
	}

	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/cerebro"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "cerebro")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/cerebro/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestStorageConfig_ResolveDataDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	t.Run("empty uses XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data")
		s := StorageConfig{}
		if got := s.ResolveDataDir(); got != "/custom/data/cerebro" {
			t.Errorf("ResolveDataDir() = %q, want %q", got, "/custom/data/cerebro")
		}
	})

	t.Run("empty without XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		s := StorageConfig{}
		want := filepath.Join(home, ".local", "share", "cerebro")
		if got := s.ResolveDataDir(); got != want {
			t.Errorf("ResolveDataDir() = %q, want %q", got, want)
		}
	})

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"absolute", "/var/lib/cerebro", "/var/lib/cerebro"},
		{"relative", "data", "data"},
		{"tilde", "~/cerebro", filepath.Join(home, "cerebro")},
		{"bare tilde", "~", home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := StorageConfig{DataDir: tt.dir}
			if got := s.ResolveDataDir(); got != tt.want {
				t.Errorf("ResolveDataDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorageConfig_LogDir(t *testing.T) {
	s := StorageConfig{DataDir: "/tmp/cerebro"}
	if got := s.LogDir(); got != "/tmp/cerebro/logs" {
		t.Errorf("LogDir() = %q, want %q", got, "/tmp/cerebro/logs")
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Focus.Duration != 15*time.Minute {
		t.Errorf("Get().Focus.Duration = %v, want 15m", cfg.Focus.Duration)
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `ai:
  backend: offline
focus:
  duration: 25m
board:
  toast_duration: 5s
storage:
  backend: sqlite
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Backend != "offline" {
		t.Errorf("AI.Backend = %q, want offline", cfg.AI.Backend)
	}
	if cfg.Focus.Duration != 25*time.Minute {
		t.Errorf("Focus.Duration = %v, want 25m", cfg.Focus.Duration)
	}
	if cfg.Board.ToastDuration != 5*time.Second {
		t.Errorf("Board.ToastDuration = %v, want 5s", cfg.Board.ToastDuration)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	// Untouched keys keep their defaults
	if cfg.Chat.HistoryLimit != 10 {
		t.Errorf("Chat.HistoryLimit = %d, want 10", cfg.Chat.HistoryLimit)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("board.urgent_capacity", 7)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for urgent_capacity above the maximum")
	}
	var verrs ValidationErrors
	if !asValidationErrors(err, &verrs) {
		t.Fatalf("Load() error type = %T, want ValidationErrors", err)
	}
	if verrs[0].Field != "board.urgent_capacity" {
		t.Errorf("field = %q, want board.urgent_capacity", verrs[0].Field)
	}

	// Get falls back to defaults
	if cfg := Get(); cfg.Board.UrgentCapacity != 3 {
		t.Errorf("Get().Board.UrgentCapacity = %d, want 3", cfg.Board.UrgentCapacity)
	}
}

func asValidationErrors(err error, target *ValidationErrors) bool {
	v, ok := err.(ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}
