package model

import "time"

// Summary holds counts of diagnostics by severity.
type Summary struct {
	// WarningCount is the number of warnings.
	WarningCount int `json:"warning_count"`

	// ErrorCount is the number of errors.
	ErrorCount int `json:"error_count"`

	// FatalCount is the number of fatal errors.
	// A single run has at most one.
	FatalCount int `json:"fatal_count"`

	// Rejected is the number of calls ignored because their message was
	// nil or empty. Rejected calls are not diagnostics and are not journaled.
	Rejected int `json:"rejected,omitempty"`
}

// Add counts one diagnostic of the given severity.
func (s *Summary) Add(severity Severity) {
	switch severity {
	case SeverityWarning:
		s.WarningCount++
	case SeverityError:
		s.ErrorCount++
	case SeverityFatal:
		s.FatalCount++
	}
}

// Total returns the number of diagnostics counted, excluding rejected calls.
func (s Summary) Total() int {
	return s.WarningCount + s.ErrorCount + s.FatalCount
}

// HasErrors returns true if any error or fatal diagnostic was counted.
func (s Summary) HasErrors() bool {
	return s.ErrorCount > 0 || s.FatalCount > 0
}

// SummarizeDiagnostics counts the given diagnostics by severity.
func SummarizeDiagnostics(diags []Diagnostic) Summary {
	var s Summary
	for _, d := range diags {
		s.Add(d.Severity)
	}
	return s
}

// Group aggregates diagnostics sharing a fingerprint.
type Group struct {
	Fingerprint string    `json:"fingerprint"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	Count       int       `json:"count"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}

// HistoryReport is the input to the history report writers.
type HistoryReport struct {
	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// RunID limits the report to one run. Empty means all runs.
	RunID string `json:"run_id,omitempty"`

	// Summary counts the diagnostics in the report.
	Summary Summary `json:"summary"`

	// Groups lists repeated diagnostics, most frequent first.
	Groups []Group `json:"groups,omitempty"`

	// Diagnostics lists the individual diagnostics in journal order.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// NewHistoryReport assembles a HistoryReport and computes its summary.
func NewHistoryReport(runID string, diags []Diagnostic, groups []Group, at time.Time) *HistoryReport {
	return &HistoryReport{
		GeneratedAt: at,
		RunID:       runID,
		Summary:     SummarizeDiagnostics(diags),
		Groups:      groups,
		Diagnostics: diags,
	}
}

// HasDiagnostics returns true if the report contains any diagnostics.
func (r *HistoryReport) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}
