package reporter

import (
	"os"
	"sync/atomic"

	applog "github.com/nao1215/applerr/internal/log"
)

var defaultReporter atomic.Pointer[Reporter]

// Default returns the process-wide Reporter.
// Until SetDefault is called it writes plain "LEVEL: message" lines to
// os.Stderr and exits with DefaultExitCode.
func Default() *Reporter {
	if r := defaultReporter.Load(); r != nil {
		return r
	}
	r := New(WithSinks(NewLogSink(applog.NewLogger(os.Stderr, applog.Options{Format: applog.FormatPlain}))))
	if defaultReporter.CompareAndSwap(nil, r) {
		return r
	}
	return defaultReporter.Load()
}

// SetDefault makes r the process-wide Reporter. A nil r is ignored.
func SetDefault(r *Reporter) {
	if r != nil {
		defaultReporter.Store(r)
	}
}

// IssueError reports an error through the process-wide Reporter.
func IssueError(msg string) {
	Default().IssueError(msg)
}

// IssueWarning reports a warning through the process-wide Reporter.
func IssueWarning(msg string) {
	Default().IssueWarning(msg)
}

// ExitWithError reports a fatal error through the process-wide Reporter
// and terminates the process. It never returns.
func ExitWithError(msg string) {
	Default().ExitWithError(msg)
}
