package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	applog "github.com/nao1215/applerr/internal/log"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "applerr"

	// DefaultFormat writes "LEVEL: message" lines, the closest match to what
	// a codec test harness prints on its own.
	DefaultFormat = applog.FormatPlain

	// DefaultExitCode is the status ExitWithError terminates with.
	DefaultExitCode = 1

	// MaxExitCode is the largest status portable across operating systems.
	MaxExitCode = 255

	// DefaultDispatchTimeout bounds the time one diagnostic may spend in its
	// sinks. The journal is the only sink that blocks on I/O.
	DefaultDispatchTimeout = 5 * time.Second
)

// Config holds all configuration options for applerr.
// This struct is populated from defaults, then the configuration file, then
// CLI flags, and passed through the application via dependency injection
// rather than global state.
type Config struct {
	// Format is the diagnostic output format: text, json or plain.
	Format applog.Format

	// Verbose enables debug output of applerr itself.
	Verbose bool

	// ShowSequence adds the diagnostic sequence number to each output line.
	ShowSequence bool

	// ExitCode is the status ExitWithError terminates with. Must be 1-255.
	ExitCode int

	// DispatchTimeout bounds the time one diagnostic may spend in its sinks.
	// Zero means no bound.
	DispatchTimeout time.Duration

	// History enables journaling of every diagnostic to the SQLite database.
	History bool

	// DBDir is the directory holding the journal database.
	// Defaults to XDG data directory (~/.local/share/applerr on Linux).
	DBDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:          DefaultFormat,
		ExitCode:        DefaultExitCode,
		DispatchTimeout: DefaultDispatchTimeout,
		DBDir:           XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for applerr.
// On Linux: ~/.local/share/applerr
// On macOS: ~/Library/Application Support/applerr
// On Windows: %LOCALAPPDATA%\applerr
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for applerr.
// On Linux: ~/.config/applerr
// On macOS: ~/Library/Application Support/applerr
// On Windows: %APPDATA%\applerr
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found.
func (c *Config) Validate() error {
	switch c.Format {
	case applog.FormatText, applog.FormatJSON, applog.FormatPlain:
	default:
		return ErrInvalidFormat
	}

	if c.ExitCode < 1 || c.ExitCode > MaxExitCode {
		return ErrInvalidExitCode
	}

	if c.DispatchTimeout < 0 {
		return ErrInvalidDispatchTimeout
	}

	if c.History && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}
