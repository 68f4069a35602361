package config

import (
	"time"

	applog "github.com/nao1215/applerr/internal/log"
)

// File represents the structure of the configuration file.
// Zero values mean "not set" and leave the corresponding Config field alone.
type File struct {
	// Log configures diagnostic output.
	Log LogSection `yaml:"log,omitempty"`

	// ExitCode is the status ExitWithError terminates with.
	ExitCode int `yaml:"exit_code,omitempty"`

	// DispatchTimeout bounds the time one diagnostic may spend in its sinks.
	DispatchTimeout time.Duration `yaml:"dispatch_timeout,omitempty"`

	// History configures the diagnostic journal.
	History HistorySection `yaml:"history,omitempty"`
}

// LogSection configures diagnostic output.
type LogSection struct {
	// Format is text, json or plain.
	Format string `yaml:"format,omitempty"`

	// Verbose enables debug output of applerr itself.
	Verbose bool `yaml:"verbose,omitempty"`

	// Sequence adds the diagnostic sequence number to each output line.
	Sequence bool `yaml:"sequence,omitempty"`
}

// HistorySection configures the diagnostic journal.
type HistorySection struct {
	// Enabled journals every diagnostic.
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir is the directory holding the journal database.
	Dir string `yaml:"dir,omitempty"`
}

// Apply copies the values set in the file onto cfg.
// Boolean options can only be switched on by the file; flags switch them off.
func (f *File) Apply(cfg *Config) {
	if f.Log.Format != "" {
		format, err := applog.ParseFormat(f.Log.Format)
		if err != nil {
			// Left for Validate to reject.
			format = applog.Format(f.Log.Format)
		}
		cfg.Format = format
	}
	if f.Log.Verbose {
		cfg.Verbose = true
	}
	if f.Log.Sequence {
		cfg.ShowSequence = true
	}
	if f.ExitCode != 0 {
		cfg.ExitCode = f.ExitCode
	}
	if f.DispatchTimeout != 0 {
		cfg.DispatchTimeout = f.DispatchTimeout
	}
	if f.History.Enabled {
		cfg.History = true
	}
	if f.History.Dir != "" {
		cfg.DBDir = f.History.Dir
	}
}
