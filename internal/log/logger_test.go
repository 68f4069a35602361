package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestNewLogger_LogLevels tests that log levels are respected.
func TestNewLogger_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		logLevel   slog.Level
		shouldShow bool
	}{
		{
			name:       "debug message shown in verbose mode",
			verbose:    true,
			logLevel:   slog.LevelDebug,
			shouldShow: true,
		},
		{
			name:       "debug message hidden in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelDebug,
			shouldShow: false,
		},
		{
			name:       "info message hidden in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelInfo,
			shouldShow: false,
		},
		{
			name:       "warn message shown in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelWarn,
			shouldShow: true,
		},
		{
			name:       "error message shown in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelError,
			shouldShow: true,
		},
		{
			name:       "fatal message shown in non-verbose mode",
			verbose:    false,
			logLevel:   LevelFatal,
			shouldShow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, format := range []Format{FormatText, FormatJSON, FormatPlain} {
				var buf bytes.Buffer
				logger := NewLogger(&buf, Options{Format: format, Verbose: tt.verbose})

				testMsg := "test_unique_message_12345"
				logger.Log(context.Background(), tt.logLevel, testMsg)

				hasMessage := strings.Contains(buf.String(), testMsg)
				if tt.shouldShow && !hasMessage {
					t.Errorf("[%s] expected message to be shown, got: %s", format, buf.String())
				}
				if !tt.shouldShow && hasMessage {
					t.Errorf("[%s] expected message to be hidden, got: %s", format, buf.String())
				}
			}
		})
	}
}

// TestNewLogger_FatalLevelName tests that LevelFatal is rendered as FATAL.
func TestNewLogger_FatalLevelName(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, Options{Format: FormatText})
		logger.Log(context.Background(), LevelFatal, "out of memory")

		if !strings.Contains(buf.String(), "level=FATAL") {
			t.Errorf("expected level=FATAL, got: %s", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, Options{Format: FormatJSON})
		logger.Log(context.Background(), LevelFatal, "out of memory")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
		}
		if record["level"] != "FATAL" {
			t.Errorf("expected level FATAL, got %v", record["level"])
		}
		if record["msg"] != "out of memory" {
			t.Errorf("expected msg 'out of memory', got %v", record["msg"])
		}
	})

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, Options{Format: FormatPlain})
		logger.Log(context.Background(), LevelFatal, "out of memory")

		if buf.String() != "FATAL: out of memory\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})
}

// TestLevelName tests level display names.
func TestLevelName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARNING"},
		{slog.LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := LevelName(tt.level); got != tt.want {
				t.Errorf("LevelName(%v) = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

// TestParseFormat tests the ParseFormat function.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"plain", FormatPlain, false},
		{"", FormatText, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
