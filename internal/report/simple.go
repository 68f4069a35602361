package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/applerr/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
type SimpleWriter struct {
	baseWriter

	// showGroups controls whether the repeated-diagnostics section is shown.
	showGroups bool

	// verbose adds run IDs and fingerprints to each diagnostic line.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithGroups configures the writer to show the repeated-diagnostics section.
func WithGroups(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showGroups = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showGroups: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.HistoryReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	if w.showGroups {
		w.writeGroups(&sb, report)
	}
	w.writeDiagnostics(&sb, report)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.HistoryReport) {
	sb.WriteString("Diagnostic History\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	if report.RunID != "" {
		fmt.Fprintf(sb, "Run:       %s\n", report.RunID)
	} else {
		sb.WriteString("Run:       all\n")
	}
	fmt.Fprintf(sb, "Generated: %s\n\n", report.GeneratedAt.Format(timeLayout))
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.HistoryReport) {
	sb.WriteString("Summary\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(sb, "  FATAL:   %d\n", report.Summary.FatalCount)
	fmt.Fprintf(sb, "  ERROR:   %d\n", report.Summary.ErrorCount)
	fmt.Fprintf(sb, "  WARNING: %d\n", report.Summary.WarningCount)
	fmt.Fprintf(sb, "  Total:   %d\n\n", report.Summary.Total())
}

func (w *SimpleWriter) writeGroups(sb *strings.Builder, report *model.HistoryReport) {
	if len(report.Groups) == 0 {
		return
	}

	sb.WriteString("Most Frequent\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, g := range report.Groups {
		fmt.Fprintf(sb, "  %5dx [%s] %s\n", g.Count, g.Severity, g.Message)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeDiagnostics(sb *strings.Builder, report *model.HistoryReport) {
	sb.WriteString("Diagnostics\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	if !report.HasDiagnostics() {
		sb.WriteString("  No diagnostics recorded.\n")
		return
	}

	for _, d := range report.Diagnostics {
		fmt.Fprintf(sb, "  %s #%d [%s] %s\n",
			d.Time.Format(timeLayout), d.Seq, d.Severity, d.Message)
		if w.verbose {
			fmt.Fprintf(sb, "      run=%s fingerprint=%s\n", d.RunID, shortFingerprint(d.Fingerprint))
		}
	}
}
