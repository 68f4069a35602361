package reporter

import (
	"context"
	"log/slog"

	applog "github.com/nao1215/applerr/internal/log"
	"github.com/nao1215/applerr/internal/model"
)

// Sink receives diagnostics from a Reporter.
//
// Emit is called with the reporter's dispatch lock held, so a Sink sees
// diagnostics one at a time and in call order. Different sinks may be
// called concurrently for the same diagnostic.
type Sink interface {
	Emit(ctx context.Context, d model.Diagnostic) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(ctx context.Context, d model.Diagnostic) error

// Emit calls f(ctx, d).
func (f SinkFunc) Emit(ctx context.Context, d model.Diagnostic) error {
	return f(ctx, d)
}

// LogSink writes diagnostics to a slog.Logger.
// Warnings are logged at slog.LevelWarn, errors at slog.LevelError and
// fatal errors at log.LevelFatal.
type LogSink struct {
	logger *slog.Logger

	// withSeq adds the diagnostic's sequence number as an attribute.
	withSeq bool
}

// LogSinkOption configures a LogSink.
type LogSinkOption func(*LogSink)

// WithSequence adds a "seq" attribute to every record.
func WithSequence(enabled bool) LogSinkOption {
	return func(s *LogSink) {
		s.withSeq = enabled
	}
}

// NewLogSink creates a LogSink writing to logger.
// If logger is nil, slog.Default() is used.
func NewLogSink(logger *slog.Logger, opts ...LogSinkOption) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &LogSink{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Emit logs the diagnostic message at the level matching its severity.
func (s *LogSink) Emit(ctx context.Context, d model.Diagnostic) error {
	var attrs []slog.Attr
	if s.withSeq {
		attrs = append(attrs, slog.Uint64("seq", d.Seq))
	}
	s.logger.LogAttrs(ctx, levelFor(d.Severity), d.Message, attrs...)
	return nil
}

// levelFor maps a severity to its slog level.
func levelFor(severity model.Severity) slog.Level {
	switch severity {
	case model.SeverityWarning:
		return slog.LevelWarn
	case model.SeverityFatal:
		return applog.LevelFatal
	default:
		return slog.LevelError
	}
}
