package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/applerr/internal/database"
	"github.com/nao1215/applerr/internal/model"
	"github.com/nao1215/applerr/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Report on journaled diagnostics",
		Long: `History reports on diagnostics journaled with --history.

By default all runs are included. Use --last for the most recent run or
--run for a specific one, and --runs to list the runs in the journal.

Examples:
  # List runs
  applerr history --runs

  # Errors and fatal errors of the most recent run
  applerr history --last --min-severity error

  # Markdown report of the last day, written to a file
  applerr history --since 24h --markdown -o history.md

  # JSON report to a file, text report to the terminal
  applerr history --json -o history.json --tee`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Bool("runs", false, "List runs in the journal")
	cmd.Flags().String("run", "", "Only include diagnostics of this run ID")
	cmd.Flags().Bool("last", false, "Only include diagnostics of the most recent run")
	cmd.Flags().String("min-severity", "", "Only include this severity and above (warning, error, fatal)")
	cmd.Flags().Duration("since", 0, "Only include diagnostics newer than this duration")
	cmd.Flags().Int("limit", 0, "Maximum number of diagnostics (0 for no limit)")
	cmd.Flags().Bool("json", false, "Output report in JSON format")
	cmd.Flags().Bool("markdown", false, "Output report in Markdown format")
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Bool("tee", false, "With --output, also print a text report to stdout")

	cmd.MarkFlagsMutuallyExclusive("run", "last")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// historyOptions holds the parsed flags of the history command.
type historyOptions struct {
	listRuns   bool
	last       bool
	filter     database.Filter
	jsonOutput bool
	markdown   bool
	outputPath string
	tee        bool
}

// parseHistoryFlags reads the history command's flags.
func parseHistoryFlags(cmd *cobra.Command, now time.Time) (*historyOptions, error) {
	flags := cmd.Flags()
	opts := &historyOptions{}

	var err error
	if opts.listRuns, err = flags.GetBool("runs"); err != nil {
		return nil, err
	}
	if opts.last, err = flags.GetBool("last"); err != nil {
		return nil, err
	}
	if opts.filter.RunID, err = flags.GetString("run"); err != nil {
		return nil, err
	}

	minSeverity, err := flags.GetString("min-severity")
	if err != nil {
		return nil, err
	}
	if minSeverity != "" {
		if opts.filter.MinSeverity, err = model.ParseSeverity(minSeverity); err != nil {
			return nil, err
		}
	}

	since, err := flags.GetDuration("since")
	if err != nil {
		return nil, err
	}
	if since < 0 {
		return nil, errors.New("--since must not be negative")
	}
	if since > 0 {
		opts.filter.Since = now.Add(-since)
	}

	if opts.filter.Limit, err = flags.GetInt("limit"); err != nil {
		return nil, err
	}
	if opts.filter.Limit < 0 {
		return nil, errors.New("--limit must not be negative")
	}

	if opts.jsonOutput, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if opts.outputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if opts.tee, err = flags.GetBool("tee"); err != nil {
		return nil, err
	}
	if opts.tee && opts.outputPath == "" {
		return nil, errors.New("--tee requires --output")
	}

	return opts, nil
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()

	opts, err := parseHistoryFlags(cmd, now)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Reading history must not create an empty journal.
	dbOpts := database.DefaultOptions()
	dbOpts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, dbOpts)
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return fmt.Errorf("no history recorded yet (run with --history to journal diagnostics): %w", err)
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.listRuns {
		return listRuns(ctx, cmd.OutOrStdout(), db)
	}

	if opts.last {
		runs, err := db.ListRuns(ctx)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs found in the journal.")
			return nil
		}
		opts.filter.RunID = runs[0].RunID
	}

	historyReport, err := buildHistoryReport(ctx, db, opts.filter, now)
	if err != nil {
		return err
	}

	return outputHistory(cmd.OutOrStdout(), opts, historyReport)
}

// buildHistoryReport queries the journal for a report matching f.
func buildHistoryReport(ctx context.Context, db *database.JournalDB, f database.Filter, now time.Time) (*model.HistoryReport, error) {
	diags, err := db.ListDiagnostics(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}

	// Groups cover every match, not just the limited page of diagnostics.
	groupFilter := f
	groupFilter.Limit = 0
	groups, err := db.GroupDiagnostics(ctx, groupFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to group diagnostics: %w", err)
	}

	return model.NewHistoryReport(f.RunID, diags, groups, now), nil
}

// outputHistory writes the report in the requested format.
func outputHistory(stdout io.Writer, opts *historyOptions, historyReport *model.HistoryReport) error {
	output := stdout
	if opts.outputPath != "" {
		dir := filepath.Dir(opts.outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(opts.outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case opts.jsonOutput:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case opts.markdown:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}
	if opts.tee {
		writer = report.NewMultiWriter(writer, report.NewSimpleWriter(stdout))
	}

	_, err := writer.Write(historyReport)
	return err
}

// listRuns prints every run in the journal.
func listRuns(ctx context.Context, w io.Writer, db *database.JournalDB) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found in the journal.")
		fmt.Fprintln(w, "\nUse 'applerr --history run <script>' to journal diagnostics.")
		return nil
	}

	fmt.Fprintf(w, "Runs (%d):\n\n", len(runs))
	fmt.Fprintf(w, "  %-36s  %-19s  %s\n", "Run ID", "Last Seen", "Diagnostics")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))
	for _, run := range runs {
		fmt.Fprintf(w, "  %-36s  %-19s  %s\n",
			run.RunID,
			run.LastSeen.Local().Format("2006-01-02 15:04:05"),
			formatSummary(run.Summary),
		)
	}
	fmt.Fprintln(w, "\nUse 'applerr history --run <id>' to see the diagnostics of a run.")

	return nil
}

// formatSummary formats per-severity counts as "1 fatal, 2 errors, 3 warnings".
func formatSummary(s model.Summary) string {
	var parts []string
	if s.FatalCount > 0 {
		parts = append(parts, fmt.Sprintf("%d fatal", s.FatalCount))
	}
	if s.ErrorCount > 0 {
		parts = append(parts, plural(s.ErrorCount, "error"))
	}
	if s.WarningCount > 0 {
		parts = append(parts, plural(s.WarningCount, "warning"))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
