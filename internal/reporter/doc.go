// Package reporter implements the application error reporter.
//
// A Reporter exposes three one-way notification entry points:
//   - IssueError: report a recoverable error and return to the caller
//   - IssueWarning: report an informational warning and return to the caller
//   - ExitWithError: report a fatal error and terminate the process
//
// Each accepted call becomes a model.Diagnostic that is handed to every
// configured Sink. Sinks decide where diagnostics go: a slog logger, the
// SQLite journal, or a function supplied by the caller.
//
// # Guarantees
//
//   - IssueError and IssueWarning always return. Sink failures are logged
//     through the reporter's own logger and counted, never propagated.
//   - ExitWithError never returns. After its diagnostic is dispatched and
//     closable sinks are closed, the exit function runs with a non-zero code.
//     Deferred functions of the caller do not run.
//   - Calls may be made from any goroutine. Dispatch is serialized, so every
//     sink observes diagnostics in call order.
//
// # Process-wide reporter
//
// The package keeps a default Reporter, writing plain "LEVEL: message"
// lines to os.Stderr, behind IssueError, IssueWarning and ExitWithError.
// Replace it with SetDefault once configuration is loaded:
//
//	rep := reporter.New(reporter.WithSinks(reporter.NewLogSink(logger)))
//	reporter.SetDefault(rep)
//	reporter.IssueWarning("retrying")
package reporter
