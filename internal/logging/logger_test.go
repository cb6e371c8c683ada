package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("writes to cerebro.log in dir", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := New(Options{Dir: dir, Level: LevelDebug, Rotation: DefaultRotationConfig()})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Info("hello", "key", "value")
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		entries := decodeLines(t, string(data))
		if len(entries) != 1 || entries[0]["msg"] != "hello" || entries[0]["key"] != "value" {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("empty dir disables logging", func(t *testing.T) {
		logger, err := New(Options{})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Error("dropped")
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "logs")
		logger, err := New(Options{Dir: dir})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer logger.Close()
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("log dir not created: %v", err)
		}
	})
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{LevelDebug, []string{"d", "i", "w", "e"}},
		{LevelInfo, []string{"i", "w", "e"}},
		{LevelWarn, []string{"w", "e"}},
		{LevelError, []string{"e"}},
		{"bogus", []string{"i", "w", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.level)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			entries := decodeLines(t, buf.String())
			if len(entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.want))
			}
			for i, e := range entries {
				if e["msg"] != tt.want[i] {
					t.Errorf("entry %d msg = %v, want %s", i, e["msg"], tt.want[i])
				}
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	root := NewWithWriter(&buf, LevelInfo)
	child := root.WithComponent("coach").With("backend", "gemini")

	child.Info("fallback")
	root.Info("plain")

	entries := decodeLines(t, buf.String())
	if entries[0]["component"] != "coach" || entries[0]["backend"] != "gemini" {
		t.Errorf("child entry = %v", entries[0])
	}
	if _, ok := entries[1]["component"]; ok {
		t.Errorf("parent inherited child attrs: %v", entries[1])
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	if logger.With() != logger {
		t.Error("With() with no args should return the receiver")
	}

	logger.With("a", 1, 2, "skipped", "b").Info("m")
	entries := decodeLines(t, buf.String())
	if entries[0]["a"] != float64(1) {
		t.Errorf("a = %v, want 1", entries[0]["a"])
	}
	if _, ok := entries[0]["b"]; ok {
		t.Error("dangling key should be dropped")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("nothing")
	logger.WithComponent("x").Error("nothing")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"Warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"trace": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Fatalf("ValidLevels() = %v", levels)
	}
	for _, l := range levels {
		if ParseLevel(l) != l {
			t.Errorf("level %q does not round trip", l)
		}
	}
}

func TestConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Options{Dir: dir, Level: LevelInfo})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log := logger.With("worker", n)
			for j := 0; j < 20; j++ {
				log.Info("tick", "j", j)
			}
		}(i)
	}
	wg.Wait()
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(decodeLines(t, string(data))); got != 200 {
		t.Errorf("got %d lines, want 200", got)
	}
}
