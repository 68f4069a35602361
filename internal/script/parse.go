package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/applerr/internal/model"
)

// Parse errors.
var (
	// ErrMissingSeparator is returned for a line without "severity:".
	ErrMissingSeparator = errors.New("expected \"<severity>: <message>\"")

	// ErrMissingMessage is returned for a line with a severity but no message.
	ErrMissingMessage = errors.New("missing message")
)

// ParseError reports a malformed script line.
type ParseError struct {
	// Line is the 1-based line number.
	Line int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Step is one diagnostic of a script.
type Step struct {
	// Line is the 1-based line the step was parsed from.
	Line int
	// Severity of the diagnostic.
	Severity model.Severity
	// Message of the diagnostic, trimmed of surrounding whitespace.
	Message string
}

// String returns the step in script syntax.
func (s Step) String() string {
	return strings.ToLower(s.Severity.String()) + ": " + s.Message
}

// Parse reads a script from r.
// The first malformed line stops parsing and is returned as a *ParseError.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		step, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		step.Line = lineNo
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return steps, nil
}

// parseLine splits "severity: message" at the first colon, so the message
// itself may contain colons ("fatal: fatal: out of memory").
func parseLine(line string) (Step, error) {
	name, msg, ok := strings.Cut(line, ":")
	if !ok {
		return Step{}, ErrMissingSeparator
	}

	severity, err := model.ParseSeverity(name)
	if err != nil {
		return Step{}, err
	}

	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Step{}, ErrMissingMessage
	}

	return Step{Severity: severity, Message: msg}, nil
}
