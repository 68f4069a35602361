package model

import (
	"encoding/json"
	"testing"
)

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{SeverityFatal, "FATAL"},
		{Severity(0), "UNKNOWN"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityOrdering verifies that severities compare by seriousness.
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if !(SeverityWarning < SeverityError && SeverityError < SeverityFatal) {
		t.Error("expected WARNING < ERROR < FATAL")
	}
	if SeverityError.IsTerminal() || SeverityWarning.IsTerminal() {
		t.Error("expected only FATAL to be terminal")
	}
	if !SeverityFatal.IsTerminal() {
		t.Error("expected FATAL to be terminal")
	}
}

// TestParseSeverity tests the ParseSeverity function.
func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"warning", SeverityWarning, false},
		{"WARN", SeverityWarning, false},
		{"Error", SeverityError, false},
		{" fatal ", SeverityFatal, false},
		{"exit", SeverityFatal, false},
		{"info", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSeverityJSON tests that severities are encoded by name.
func TestSeverityJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(SeverityError)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"ERROR"` {
		t.Errorf("expected \"ERROR\", got %s", data)
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"warning"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != SeverityWarning {
		t.Errorf("expected WARNING, got %v", s)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &s); err == nil {
		t.Error("expected error for unknown severity name")
	}
}
