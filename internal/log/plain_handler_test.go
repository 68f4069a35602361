package log

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestPlainHandler_Format tests the line format of PlainHandler.
func TestPlainHandler_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{
			name: "message only",
			log:  func(l *slog.Logger) { l.Error("decode failed") },
			want: "ERROR: decode failed\n",
		},
		{
			name: "warning level name",
			log:  func(l *slog.Logger) { l.Warn("retrying") },
			want: "WARNING: retrying\n",
		},
		{
			name: "attributes follow the message",
			log:  func(l *slog.Logger) { l.Error("decode failed", "seq", 1, "frame", 42) },
			want: "ERROR: decode failed seq=1 frame=42\n",
		},
		{
			name: "values with spaces are quoted",
			log:  func(l *slog.Logger) { l.Warn("retrying", "reason", "slice lost") },
			want: "WARNING: retrying reason=\"slice lost\"\n",
		},
		{
			name: "groups flatten to dotted keys",
			log: func(l *slog.Logger) {
				l.Error("decode failed", slog.Group("frame", slog.Int("index", 3)))
			},
			want: "ERROR: decode failed frame.index=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.log(slog.New(NewPlainHandler(&buf, nil)))

			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// TestPlainHandler_WithAttrsAndGroup tests derived handlers.
func TestPlainHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPlainHandler(&buf, nil))

	logger.With("run_id", "r1").WithGroup("codec").Error("decode failed", "profile", "baseline")

	want := "ERROR: decode failed run_id=r1 codec.profile=baseline\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

// TestPlainHandler_NilOptions tests that a nil options value is handled gracefully.
func TestPlainHandler_NilOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPlainHandler(&buf, nil))

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("expected debug to be hidden, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info to be shown, got %q", buf.String())
	}
}

// TestPlainHandler_ConcurrentWrites verifies lines never interleave.
func TestPlainHandler_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPlainHandler(&buf, nil))
	derived := logger.With("worker", "b")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			logger.Error("decode failed")
		}()
		go func() {
			defer wg.Done()
			derived.Warn("retrying")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 100 {
		t.Fatalf("expected 100 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != "ERROR: decode failed" && line != "WARNING: retrying worker=b" {
			t.Errorf("corrupted line: %q", line)
		}
	}
}
