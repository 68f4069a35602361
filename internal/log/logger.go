package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelFatal is the level of conditions after which the process terminates.
const LevelFatal = slog.LevelError + 4

// Format selects the output form of a logger.
type Format string

const (
	// FormatText writes slog key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatPlain writes "LEVEL: message" lines followed by any attributes.
	FormatPlain Format = "plain"
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatPlain:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want text, json or plain)", s)
	}
}

// Options configures NewLogger.
type Options struct {
	// Format is the output form. Empty means FormatText.
	Format Format

	// Verbose sets the level to Debug; otherwise Warn.
	Verbose bool

	// AddSource adds the caller's file and line to each record.
	AddSource bool
}

// Level returns the minimum level implied by the options.
func (o Options) Level() slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a new slog.Logger writing to w.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - opts: Format, verbosity and source options
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to a reporter.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level(),
		AddSource:   opts.AddSource,
		ReplaceAttr: replaceLevel,
	}

	var handler slog.Handler
	switch opts.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	case FormatPlain:
		handler = NewPlainHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// LevelName returns the display name of a level, naming LevelFatal "FATAL".
func LevelName(level slog.Level) string {
	if level == LevelFatal {
		return "FATAL"
	}
	if level == slog.LevelWarn {
		return "WARNING"
	}
	return level.String()
}

// replaceLevel renders the level attribute through LevelName.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	return slog.String(slog.LevelKey, LevelName(level))
}
