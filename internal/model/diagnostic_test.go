package model

import (
	"testing"
	"time"
)

// TestFingerprint tests that fingerprints identify repeated conditions.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("same severity and message share a fingerprint", func(t *testing.T) {
		t.Parallel()
		a := Fingerprint(SeverityError, "decode failed")
		b := Fingerprint(SeverityError, "decode failed")
		if a != b {
			t.Errorf("expected equal fingerprints, got %q and %q", a, b)
		}
	})

	t.Run("different severity changes the fingerprint", func(t *testing.T) {
		t.Parallel()
		a := Fingerprint(SeverityError, "decode failed")
		b := Fingerprint(SeverityWarning, "decode failed")
		if a == b {
			t.Error("expected different fingerprints for different severities")
		}
	})

	t.Run("different message changes the fingerprint", func(t *testing.T) {
		t.Parallel()
		a := Fingerprint(SeverityError, "decode failed")
		b := Fingerprint(SeverityError, "decode stalled")
		if a == b {
			t.Error("expected different fingerprints")
		}
	})

	t.Run("fingerprint is 64 hex characters", func(t *testing.T) {
		t.Parallel()
		fp := Fingerprint(SeverityFatal, "fatal: out of memory")
		if len(fp) != 64 {
			t.Errorf("expected 64 characters, got %d", len(fp))
		}
	})
}

// TestNewDiagnostic tests diagnostic construction.
func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := NewDiagnostic(SeverityWarning, "retrying", at)

	if d.Severity != SeverityWarning {
		t.Errorf("expected WARNING, got %v", d.Severity)
	}
	if d.Message != "retrying" {
		t.Errorf("expected message 'retrying', got %q", d.Message)
	}
	if !d.Time.Equal(at) {
		t.Errorf("expected time %v, got %v", at, d.Time)
	}
	if d.Fingerprint != Fingerprint(SeverityWarning, "retrying") {
		t.Error("expected fingerprint to be computed")
	}
}

// TestSummary tests Summary counting.
func TestSummary(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		{Severity: SeverityWarning},
		{Severity: SeverityError},
		{Severity: SeverityError},
		{Severity: SeverityFatal},
	}

	s := SummarizeDiagnostics(diags)
	if s.WarningCount != 1 || s.ErrorCount != 2 || s.FatalCount != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Total() != 4 {
		t.Errorf("expected total 4, got %d", s.Total())
	}
	if !s.HasErrors() {
		t.Error("expected HasErrors to be true")
	}

	var empty Summary
	empty.Add(SeverityWarning)
	if empty.HasErrors() {
		t.Error("warnings alone should not count as errors")
	}
}

// TestHistoryReport tests HistoryReport helpers.
func TestHistoryReport(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		{Seq: 1, Severity: SeverityError, Message: "decode failed"},
		{Seq: 2, Severity: SeverityWarning, Message: "retrying"},
		{Seq: 3, Severity: SeverityError, Message: "decode failed"},
	}
	r := NewHistoryReport("run-1", diags, nil, time.Now())

	if !r.HasDiagnostics() {
		t.Error("expected diagnostics")
	}
	if r.Summary.ErrorCount != 2 {
		t.Errorf("expected 2 errors, got %d", r.Summary.ErrorCount)
	}

	empty := NewHistoryReport("", nil, nil, time.Now())
	if empty.HasDiagnostics() {
		t.Error("expected no diagnostics")
	}
}
