package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Diagnostic is a single reported condition.
// A Diagnostic is built by the reporter for every accepted call and handed to
// each sink; the caller's message is copied, never retained by reference.
type Diagnostic struct {
	// ID is the journal row ID. Zero until the diagnostic is persisted.
	ID int64 `json:"id,omitempty"`

	// RunID identifies the reporter (one per process) that emitted the diagnostic.
	RunID string `json:"run_id,omitempty"`

	// Seq is the 1-based position of the diagnostic in its run, in call order.
	Seq uint64 `json:"seq"`

	// Severity is the level of the condition.
	Severity Severity `json:"severity"`

	// Message is the decoded diagnostic text.
	Message string `json:"message"`

	// Time is when the reporter accepted the call.
	Time time.Time `json:"time"`

	// Fingerprint identifies repeated diagnostics. See Fingerprint.
	Fingerprint string `json:"fingerprint"`
}

// NewDiagnostic creates a Diagnostic with its fingerprint computed.
func NewDiagnostic(severity Severity, message string, at time.Time) Diagnostic {
	return Diagnostic{
		Severity:    severity,
		Message:     message,
		Time:        at,
		Fingerprint: Fingerprint(severity, message),
	}
}

// Fingerprint returns the hex BLAKE2b-256 digest of the severity name and
// message separated by a NUL byte. Identical conditions share a fingerprint
// across runs, which is what the history grouping keys on.
func Fingerprint(severity Severity, message string) string {
	name := severity.String()
	buf := make([]byte, 0, len(name)+1+len(message))
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = append(buf, message...)
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
