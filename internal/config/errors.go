package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidFormat is returned when the output format is not text, json or plain.
	ErrInvalidFormat = errors.New("invalid format: must be text, json or plain")

	// ErrInvalidExitCode is returned when the exit code is outside 1-255.
	// Zero would report success for a fatal error.
	ErrInvalidExitCode = errors.New("invalid exit code: must be between 1 and 255")

	// ErrInvalidDispatchTimeout is returned when the dispatch timeout is negative.
	// Use 0 for no bound.
	ErrInvalidDispatchTimeout = errors.New("invalid dispatch timeout: must be non-negative")

	// ErrNoDBDir is returned when history is enabled without a database directory.
	ErrNoDBDir = errors.New("history enabled but no database directory configured")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
