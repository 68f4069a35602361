package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/applerr/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for attaching harness results to issues and
// pull requests.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.HistoryReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeGroups(md, report)
	w.writeDiagnostics(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and its properties.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.HistoryReport) {
	md.H1("Diagnostic History")
	md.PlainText("")

	run := "all"
	if report.RunID != "" {
		run = "`" + report.RunID + "`"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", run},
			{"Generated", report.GeneratedAt.Format(timeLayout)},
			{"Diagnostics", strconv.Itoa(report.Summary.Total())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.HistoryReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"FATAL", strconv.Itoa(report.Summary.FatalCount)},
			{"ERROR", strconv.Itoa(report.Summary.ErrorCount)},
			{"WARNING", strconv.Itoa(report.Summary.WarningCount)},
			{"**Total**", "**" + strconv.Itoa(report.Summary.Total()) + "**"},
		},
	})
	md.PlainText("")

	if report.HasDiagnostics() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.HistoryReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Diagnostic Severity Distribution"),
		piechart.WithShowData(true),
	)

	if report.Summary.FatalCount > 0 {
		chart.LabelAndIntValue("Fatal", uint64(report.Summary.FatalCount))
	}
	if report.Summary.ErrorCount > 0 {
		chart.LabelAndIntValue("Error", uint64(report.Summary.ErrorCount))
	}
	if report.Summary.WarningCount > 0 {
		chart.LabelAndIntValue("Warning", uint64(report.Summary.WarningCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert reflecting the most serious severity present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.HistoryReport) {
	switch {
	case report.Summary.FatalCount > 0:
		md.Cautionf("%d fatal error(s) terminated the harness.", report.Summary.FatalCount)
	case report.Summary.ErrorCount > 0:
		md.Warningf("%d error(s) reported.", report.Summary.ErrorCount)
	case report.Summary.WarningCount > 0:
		md.Note("Only warnings reported.")
	default:
		md.Tip("No diagnostics recorded.")
	}
	md.PlainText("")
}

// writeGroups writes the repeated-diagnostics table.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, report *model.HistoryReport) {
	if len(report.Groups) == 0 {
		return
	}

	md.H2("Most Frequent")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Groups))
	for _, g := range report.Groups {
		rows = append(rows, []string{
			strconv.Itoa(g.Count),
			g.Severity.String(),
			escapeCell(g.Message),
			"`" + shortFingerprint(g.Fingerprint) + "`",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Count", "Severity", "Message", "Fingerprint"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDiagnostics writes every diagnostic in journal order.
func (w *MarkdownWriter) writeDiagnostics(md *markdown.Markdown, report *model.HistoryReport) {
	md.H2("Diagnostics")
	md.PlainText("")

	if !report.HasDiagnostics() {
		md.PlainText("No diagnostics recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		rows = append(rows, []string{
			d.Time.Format(timeLayout),
			strconv.FormatUint(d.Seq, 10),
			d.Severity.String(),
			escapeCell(d.Message),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Time", "Seq", "Severity", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by applerr*")
}

// escapeCell keeps a message from breaking the table layout.
func escapeCell(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '|':
			out = append(out, '\\', '|')
		case '\n', '\r':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
