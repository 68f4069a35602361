package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/applerr/internal/config"
	"github.com/nao1215/applerr/internal/database"
	applog "github.com/nao1215/applerr/internal/log"
	"github.com/nao1215/applerr/internal/reporter"
)

// buildConfig creates a Config from defaults, the configuration file and the
// global flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, it must exist.
	// Otherwise a missing file silently leaves the defaults.
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		parsed, err := applog.ParseFormat(format)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
		}
		cfg.Format = parsed
	}

	if flags.Changed("exit-code") {
		if cfg.ExitCode, err = flags.GetInt("exit-code"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	for name, dst := range map[string]*bool{
		"verbose":  &cfg.Verbose,
		"sequence": &cfg.ShowSequence,
		"history":  &cfg.History,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// setupLogger creates the logger diagnostics and applerr's own messages
// are written through.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return applog.NewLogger(w, applog.Options{
		Format:  cfg.Format,
		Verbose: cfg.Verbose,
	})
}

// newReporter builds the Reporter described by cfg and installs it as the
// process-wide default. Diagnostics go to w and, with history enabled, to
// the journal; the journal is closed by Reporter.Close or ExitWithError.
func newReporter(w io.Writer, cfg *config.Config, extra ...reporter.Option) (*reporter.Reporter, *slog.Logger, error) {
	logger := setupLogger(w, cfg)

	sinks := []reporter.Sink{
		reporter.NewLogSink(logger, reporter.WithSequence(cfg.ShowSequence)),
	}

	if cfg.History {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history database: %w", err)
		}
		logger.Debug("journaling diagnostics", "path", db.Path())
		sinks = append(sinks, db)
	}

	opts := []reporter.Option{
		reporter.WithSinks(sinks...),
		reporter.WithLogger(logger),
		reporter.WithExitCode(cfg.ExitCode),
		reporter.WithDispatchTimeout(cfg.DispatchTimeout),
	}
	rep := reporter.New(append(opts, extra...)...)
	reporter.SetDefault(rep)

	logger.Debug("reporter ready", "run_id", rep.RunID(), "exit_code", rep.ExitCode())
	return rep, logger, nil
}
