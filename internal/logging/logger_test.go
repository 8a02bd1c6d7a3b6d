package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(Options{Dir: dir, Level: "debug"})
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("log file was not created: %v", err)
		}
	})

	t.Run("writes to output when dir is empty", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(Options{Output: &buf})
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.Info("kickoff")

		if !strings.Contains(buf.String(), "kickoff") {
			t.Errorf("output %q does not contain message", buf.String())
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		warn    bool
		errOnly bool
	}{
		{level: "debug", debug: true, warn: true},
		{level: "info", warn: true},
		{level: "warn", warn: true},
		{level: "error", errOnly: true},
		{level: "bogus", warn: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(Options{Level: tt.level, Output: &buf})
			if err != nil {
				t.Fatalf("NewLogger failed: %v", err)
			}

			logger.Debug("debug-msg")
			logger.Warn("warn-msg")
			logger.Error("error-msg")

			out := buf.String()
			if got := strings.Contains(out, "debug-msg"); got != tt.debug {
				t.Errorf("debug logged = %v, want %v", got, tt.debug)
			}
			if got := strings.Contains(out, "warn-msg"); got != (tt.warn && !tt.errOnly) {
				t.Errorf("warn logged = %v, want %v", got, tt.warn)
			}
			if !strings.Contains(out, "error-msg") {
				t.Error("error should always be logged")
			}
		})
	}
}

func TestJSONContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Options{Format: FormatJSON, Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.WithRun("run-7").WithPhase("measuring").WithTeam("offense").Info("ball moved", "ball_pos", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	for key, want := range map[string]any{
		"run_id":   "run-7",
		"phase":    "measuring",
		"team":     "offense",
		"msg":      "ball moved",
		"ball_pos": float64(3),
	} {
		if entry[key] != want {
			t.Errorf("entry[%q] = %v, want %v", key, entry[key], want)
		}
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(Options{Output: &buf})

	_ = logger.WithTeam("crazy-fan")
	logger.Info("plain")

	if strings.Contains(buf.String(), "crazy-fan") {
		t.Errorf("parent logger picked up child attribute: %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("dropped")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}

	var nilLogger *Logger
	nilLogger.Warn("also dropped")
}
