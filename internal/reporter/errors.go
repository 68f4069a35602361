package reporter

import (
	"errors"

	"github.com/nao1215/applerr/internal/message"
)

var (
	// ErrEmptyMessage is returned by Report when the message is empty.
	// It is the same value as message.ErrEmptyMessage so errors.Is works
	// for both the string and byte-string entry points.
	ErrEmptyMessage = message.ErrEmptyMessage

	// ErrFatalViaReport is returned when Report is asked for a fatal
	// diagnostic. Fatal conditions must go through ExitWithError so the
	// process is guaranteed to terminate.
	ErrFatalViaReport = errors.New("fatal severity must be reported with ExitWithError")

	// ErrInvalidSeverity is returned by Report for unknown severities.
	ErrInvalidSeverity = errors.New("invalid severity")

	// errExitReturned is the panic value used when an injected exit
	// function returns instead of terminating.
	errExitReturned = errors.New("reporter: exit function returned")
)
