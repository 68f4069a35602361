package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/applerr/internal/reporter"
)

// maxStdinMessage caps a message read from stdin.
const maxStdinMessage = 64 * 1024

// NewErrorCmd creates the error command.
func NewErrorCmd() *cobra.Command {
	return newDiagnosticCmd(
		"error [message...]",
		"Report an error and return",
		`Report an error-severity condition. The command exits with status 0:
an error is reported, it does not end the caller's run.`,
		func(rep *reporter.Reporter, msg []byte) {
			rep.IssueErrorBytes(msg)
		},
	)
}

// NewWarningCmd creates the warning command.
func NewWarningCmd() *cobra.Command {
	return newDiagnosticCmd(
		"warning [message...]",
		"Report a warning and return",
		`Report a warning-severity condition. The command exits with status 0.`,
		func(rep *reporter.Reporter, msg []byte) {
			rep.IssueWarningBytes(msg)
		},
	)
}

// NewExitCmd creates the exit command.
func NewExitCmd() *cobra.Command {
	return newDiagnosticCmd(
		"exit [message...]",
		"Report a fatal error and exit with a non-zero status",
		`Report a fatal error and terminate with the configured exit status
(default 1). An empty message is reported as "unspecified fatal error".`,
		func(rep *reporter.Reporter, msg []byte) {
			rep.ExitWithErrorBytes(msg)
		},
	)
}

// newDiagnosticCmd builds a command that reports one diagnostic.
// The message is the arguments joined by spaces or, without arguments, the
// contents of stdin up to the first NUL byte.
func newDiagnosticCmd(use, short, long string, report func(*reporter.Reporter, []byte)) *cobra.Command {
	name, _, _ := strings.Cut(use, " ")
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: long + `

Examples:
  applerr ` + name + ` decode failed
  printf 'decode failed' | applerr ` + name,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			rep, _, err := newReporter(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			report(rep, msg)
			return rep.Close()
		},
	}
}

// readMessage returns the message given by args, or by stdin when args is empty.
func readMessage(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}

	msg, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to read message from stdin: %w", err)
	}
	return []byte(strings.TrimRight(string(msg), "\r\n")), nil
}
