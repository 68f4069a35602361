package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/applerr/internal/model"
	"github.com/nao1215/applerr/internal/script"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a diagnostic script",
		Long: `Run replays a script of diagnostics, one per line:

  # conformance run
  error: decode failed
  warning: retrying
  fatal: out of memory

Severities are warning (warn), error and fatal (exit). Blank lines and lines
starting with '#' are ignored. A fatal line terminates the process with the
configured exit status; lines after it never run.

Use '-' to read the script from stdin.

Examples:
  applerr run conformance.txt
  applerr run --history --summary conformance.txt
  generate-diagnostics | applerr run -`,
		Args: cobra.ExactArgs(1),
		RunE: runRunCmd,
	}

	cmd.Flags().Bool("summary", false, "Print a summary of reported diagnostics to stdout")
	cmd.Flags().Bool("strict", false, "Exit with a non-zero status if any error was reported")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	steps, err := loadScript(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	showSummary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	rep, logger, err := newReporter(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := script.NewRunner(rep, script.WithLogger(logger)).Run(ctx, steps)
	if err := rep.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close reporter: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	summary := rep.Summary()
	if showSummary {
		printSummary(cmd.OutOrStdout(), rep.RunID(), summary)
	}
	if strict && summary.HasErrors() {
		return fmt.Errorf("%d error(s) reported", summary.ErrorCount)
	}
	return nil
}

// loadScript parses the script at path, or stdin when path is "-".
func loadScript(stdin io.Reader, path string) ([]script.Step, error) {
	if path == "-" {
		steps, err := script.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return steps, nil
	}

	f, err := os.Open(path) //nolint:gosec // User-provided script path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	steps, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// printSummary writes the per-severity counts of a run.
func printSummary(w io.Writer, runID string, s model.Summary) {
	fmt.Fprintf(w, "Run %s\n", runID)
	fmt.Fprintf(w, "  warnings: %d\n", s.WarningCount)
	fmt.Fprintf(w, "  errors:   %d\n", s.ErrorCount)
	fmt.Fprintf(w, "  fatal:    %d\n", s.FatalCount)
	fmt.Fprintf(w, "  rejected: %d\n", s.Rejected)
}
