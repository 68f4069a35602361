package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/applerr/internal/reporter"
)

// Runner replays steps against a reporter.
type Runner struct {
	reporter *reporter.Reporter
	logger   *slog.Logger
}

// Option is a function that configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for step tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner reporting through rep.
func NewRunner(rep *reporter.Reporter, opts ...Option) *Runner {
	r := &Runner{
		reporter: rep,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays steps in order.
// A fatal step calls ExitWithError, so Run does not return after one; steps
// following it never run. Cancellation of ctx is checked between steps.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("script interrupted before line %d: %w", step.Line, err)
		}

		r.logger.DebugContext(ctx, "replaying step",
			"line", step.Line,
			"severity", step.Severity.String())

		if step.Severity.IsTerminal() {
			r.reporter.ExitWithError(step.Message)
		}

		if _, err := r.reporter.Report(ctx, step.Severity, step.Message); err != nil {
			return fmt.Errorf("line %d: %w", step.Line, err)
		}
	}
	return nil
}

// Run replays steps against rep with a default Runner.
func Run(ctx context.Context, rep *reporter.Reporter, steps []Step) error {
	return NewRunner(rep).Run(ctx, steps)
}
