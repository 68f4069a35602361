package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the level of a reported condition.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and filtering ("at least ERROR"). The String()
// method provides human-readable output when needed.
type Severity int

const (
	// SeverityWarning is a strictly informational condition.
	// The caller continues execution after it is reported.
	SeverityWarning Severity = iota + 1

	// SeverityError is a recoverable error condition.
	// The caller continues execution after it is reported.
	SeverityError

	// SeverityFatal is an error condition after which the process terminates.
	SeverityFatal
)

// severityUnknownStr is the string representation for unknown severity values.
const severityUnknownStr = "UNKNOWN"

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return severityUnknownStr
	}
}

// IsValid returns true if this is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityWarning, SeverityError, SeverityFatal:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a condition of this severity ends the process.
func (s Severity) IsTerminal() bool {
	return s == SeverityFatal
}

// ParseSeverity converts a string to Severity.
// Names are matched case-insensitively; "warn" and "exit" are accepted as
// aliases for WARNING and FATAL.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "fatal", "exit":
		return SeverityFatal, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalJSON encodes the severity by name so JSON output stays readable.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
