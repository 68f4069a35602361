package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/applerr/internal/message"
	"github.com/nao1215/applerr/internal/model"
)

const (
	// DefaultExitCode is the process status used by ExitWithError.
	DefaultExitCode = 1

	// MaxExitCode is the largest status that survives the 8-bit truncation
	// of process exit codes. 256 would be reported as 0.
	MaxExitCode = 255

	// UnspecifiedFatalMessage replaces a nil or empty ExitWithError message.
	UnspecifiedFatalMessage = "unspecified fatal error"
)

// Reporter dispatches diagnostics to its sinks.
// A Reporter is safe for concurrent use. The zero value is not usable;
// create one with New.
type Reporter struct {
	// mu serializes dispatch and guards the fields below it.
	mu      sync.Mutex
	seq     uint64
	summary model.Summary
	exited  bool

	sinks           []Sink
	logger          *slog.Logger
	exit            func(code int)
	exitCode        int
	now             func() time.Time
	runID           string
	dispatchTimeout time.Duration

	sinkFailures atomic.Int64
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSinks appends sinks. Diagnostics are dispatched to all sinks.
func WithSinks(sinks ...Sink) Option {
	return func(r *Reporter) {
		for _, s := range sinks {
			if s != nil {
				r.sinks = append(r.sinks, s)
			}
		}
	}
}

// WithLogger sets the logger for the reporter's own messages, such as sink
// failures and rejected calls. It is not a diagnostic sink.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExitFunc replaces os.Exit. The function must not return; if it does,
// ExitWithError panics.
func WithExitFunc(exit func(code int)) Option {
	return func(r *Reporter) {
		if exit != nil {
			r.exit = exit
		}
	}
}

// WithExitCode sets the status used by ExitWithError.
// Codes outside 1-MaxExitCode could signal success and are ignored.
func WithExitCode(code int) Option {
	return func(r *Reporter) {
		if code >= 1 && code <= MaxExitCode {
			r.exitCode = code
		}
	}
}

// WithClock sets the time source for diagnostic timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunID sets the run identifier stamped on every diagnostic.
// By default a random UUID is generated.
func WithRunID(id string) Option {
	return func(r *Reporter) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithDispatchTimeout bounds how long a single diagnostic may spend in its
// sinks. Zero means no bound. A sink still running when the bound expires
// is counted as failed and left to finish in the background; it may then
// observe the following diagnostics out of order.
func WithDispatchTimeout(d time.Duration) Option {
	return func(r *Reporter) {
		if d >= 0 {
			r.dispatchTimeout = d
		}
	}
}

// New creates a Reporter.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		exit:     os.Exit,
		exitCode: DefaultExitCode,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	return r
}

// RunID returns the run identifier stamped on every diagnostic.
func (r *Reporter) RunID() string {
	return r.runID
}

// ExitCode returns the status ExitWithError terminates with.
func (r *Reporter) ExitCode() int {
	return r.exitCode
}

// Summary returns the counts of diagnostics reported so far.
func (r *Reporter) Summary() model.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// SinkFailures returns how many sink emissions have failed.
func (r *Reporter) SinkFailures() int {
	return int(r.sinkFailures.Load())
}

// IssueError reports an error-severity condition and returns.
// Like a byte-string, msg ends at its first NUL byte.
func (r *Reporter) IssueError(msg string) {
	r.issue(model.SeverityError, msg)
}

// IssueWarning reports a warning-severity condition and returns.
// Like a byte-string, msg ends at its first NUL byte.
func (r *Reporter) IssueWarning(msg string) {
	r.issue(model.SeverityWarning, msg)
}

// IssueErrorBytes decodes a NUL-terminated byte-string and reports it as
// an error. A nil or empty byte-string is rejected.
func (r *Reporter) IssueErrorBytes(b []byte) {
	r.issueBytes(model.SeverityError, b)
}

// IssueWarningBytes decodes a NUL-terminated byte-string and reports it as
// a warning. A nil or empty byte-string is rejected.
func (r *Reporter) IssueWarningBytes(b []byte) {
	r.issueBytes(model.SeverityWarning, b)
}

// ExitWithErrorBytes decodes a NUL-terminated byte-string and terminates
// through ExitWithError. It never returns.
func (r *Reporter) ExitWithErrorBytes(b []byte) {
	msg, err := message.Decode(b)
	if err != nil {
		msg = ""
	}
	r.ExitWithError(msg)
}

// Report dispatches a warning or error diagnostic and returns it.
// Fatal diagnostics are rejected with ErrFatalViaReport.
func (r *Reporter) Report(ctx context.Context, severity model.Severity, msg string) (model.Diagnostic, error) {
	if !severity.IsValid() {
		return model.Diagnostic{}, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(severity))
	}
	if severity.IsTerminal() {
		return model.Diagnostic{}, ErrFatalViaReport
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if msg == "" {
		r.rejectLocked(ctx, severity, ErrEmptyMessage)
		return model.Diagnostic{}, ErrEmptyMessage
	}
	if r.exited {
		r.logger.DebugContext(ctx, "diagnostic dropped after fatal error",
			"severity", severity.String())
		return model.Diagnostic{}, nil
	}

	d := r.nextLocked(severity, msg)
	r.dispatchLocked(ctx, d)
	return d, nil
}

// ExitWithError reports a fatal condition, closes closable sinks and
// terminates the process with the configured exit code. It never returns.
// The message ends at its first NUL byte; an empty message is replaced with
// UnspecifiedFatalMessage.
func (r *Reporter) ExitWithError(msg string) {
	msg = message.TerminateString(msg)
	if msg == "" {
		msg = UnspecifiedFatalMessage
	}

	ctx := context.Background()

	r.mu.Lock()
	if !r.exited {
		r.exited = true
		d := r.nextLocked(model.SeverityFatal, msg)
		r.dispatchLocked(ctx, d)
		_ = r.closeSinksLocked(ctx)
	}
	exit, code := r.exit, r.exitCode
	r.mu.Unlock()

	exit(code)
	panic(errExitReturned)
}

// Close closes every sink implementing io.Closer.
// Diagnostics reported after Close reach sinks that have been closed, so
// Close belongs at the end of a normal program run.
func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeSinksLocked(context.Background())
}

// issue is the non-terminating entry point shared by IssueError and IssueWarning.
func (r *Reporter) issue(severity model.Severity, msg string) {
	// Errors are either ErrEmptyMessage, already counted as rejected, or
	// impossible for the fixed severities used here.
	_, _ = r.Report(context.Background(), severity, message.TerminateString(msg))
}

func (r *Reporter) issueBytes(severity model.Severity, b []byte) {
	msg, err := message.Decode(b)
	if err != nil {
		r.mu.Lock()
		r.rejectLocked(context.Background(), severity, err)
		r.mu.Unlock()
		return
	}
	r.issue(severity, msg)
}

// rejectLocked counts a call whose message could not be used.
func (r *Reporter) rejectLocked(ctx context.Context, severity model.Severity, reason error) {
	r.summary.Rejected++
	r.logger.DebugContext(ctx, "diagnostic rejected",
		"severity", severity.String(),
		"reason", reason.Error(),
	)
}

// nextLocked builds the next diagnostic in sequence and counts it.
func (r *Reporter) nextLocked(severity model.Severity, msg string) model.Diagnostic {
	r.seq++
	d := model.NewDiagnostic(severity, msg, r.now())
	d.RunID = r.runID
	d.Seq = r.seq
	r.summary.Add(severity)
	return d
}

// Sink states during one dispatch.
const (
	sinkRunning int32 = iota
	sinkDone
	sinkAbandoned
)

// dispatchLocked hands d to every sink. Sinks run concurrently; a failing
// or panicking sink is logged and counted without affecting the others.
// With a dispatch timeout, sinks still running at the deadline are
// abandoned and counted as failed.
func (r *Reporter) dispatchLocked(ctx context.Context, d model.Diagnostic) {
	if len(r.sinks) == 0 {
		return
	}

	if r.dispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.dispatchTimeout)
		defer cancel()
	}

	states := make([]atomic.Int32, len(r.sinks))

	var g errgroup.Group
	for i, sink := range r.sinks {
		g.Go(func() error {
			err := emitSafely(ctx, sink, d)
			if !states[i].CompareAndSwap(sinkRunning, sinkDone) {
				// Already counted when it was abandoned.
				return err
			}
			if err != nil {
				r.sinkFailures.Add(1)
				r.logger.WarnContext(ctx, "sink failed",
					"sink", i,
					"seq", d.Seq,
					"error", err,
				)
			}
			return err
		})
	}

	if r.dispatchTimeout <= 0 {
		// Failures were logged per sink above.
		_ = g.Wait()
		return
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		for i := range states {
			if states[i].CompareAndSwap(sinkRunning, sinkAbandoned) {
				r.sinkFailures.Add(1)
				r.logger.WarnContext(context.WithoutCancel(ctx), "sink abandoned",
					"sink", i,
					"seq", d.Seq,
					"error", ctx.Err(),
				)
			}
		}
	}
}

// closeSinksLocked closes every sink implementing io.Closer and returns the
// joined close errors.
func (r *Reporter) closeSinksLocked(ctx context.Context) error {
	var errs []error
	for i, sink := range r.sinks {
		c, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			r.logger.WarnContext(ctx, "failed to close sink", "sink", i, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// emitSafely calls sink.Emit, converting a panic into an error.
func emitSafely(ctx context.Context, sink Sink, d model.Diagnostic) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sink panicked: %v", p)
		}
	}()
	return sink.Emit(ctx, d)
}
