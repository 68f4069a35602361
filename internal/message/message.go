package message

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrNilMessage is returned when the caller passes no buffer at all.
	ErrNilMessage = errors.New("nil message")

	// ErrEmptyMessage is returned when the message has no characters before
	// its terminating NUL byte.
	ErrEmptyMessage = errors.New("empty message")
)

// Terminate returns b up to, but not including, its first NUL byte.
// If b contains no NUL, b is returned unchanged.
func Terminate(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// Decode converts a NUL-terminated byte-string into a string.
// The returned string never aliases b, so callers may reuse their buffer
// as soon as Decode returns.
func Decode(b []byte) (string, error) {
	if b == nil {
		return "", ErrNilMessage
	}

	b = Terminate(b)
	if len(b) == 0 {
		return "", ErrEmptyMessage
	}

	if utf8.Valid(b) {
		return string(b), nil
	}
	return decodeLatin1(b)
}

// decodeLatin1 decodes b as ISO-8859-1.
func decodeLatin1(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// TerminateString returns s up to, not including, its first NUL byte.
// It gives Go strings the same termination rule as byte-strings.
func TerminateString(s string) string {
	before, _, _ := strings.Cut(s, "\x00")
	return before
}
