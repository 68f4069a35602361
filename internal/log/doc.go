// Package log builds the slog loggers used by applerr.
//
// This package extends slog to provide:
//   - A FATAL level above slog.LevelError for conditions that end the process
//   - Three output formats: slog text, slog JSON, and a plain "LEVEL: message" form
//   - Configurable log levels with verbose mode support
//
// # Usage
//
//	// Create a logger writing key=value lines
//	logger := log.NewLogger(os.Stderr, log.Options{Format: log.FormatText})
//
//	// Fatal conditions use the custom level
//	logger.Log(ctx, log.LevelFatal, "out of memory")
//
//	// Set as default logger
//	slog.SetDefault(logger)
//
// Diagnostics are always logged at WARN or above, so they are visible in
// both verbose and non-verbose mode. Verbose mode additionally shows the
// debug output of applerr itself.
package log
