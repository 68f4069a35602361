package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for applerr.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applerr",
		Short: "Error reporter for video codec test harnesses",
		Long: `applerr reports warnings, errors and fatal errors on behalf of a video
codec test harness.

Warnings and errors are reported and control returns to the caller.
A fatal error is reported and the process terminates with a non-zero status.

Diagnostics are written to stderr. With --history every diagnostic is also
journaled to a SQLite database that 'applerr history' can report on.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringP("config", "c", "",
		"Path to configuration file (default: .applerr or XDG config dir)")
	flags.StringP("format", "F", "", "Diagnostic format: text, json or plain (default plain)")
	flags.IntP("exit-code", "e", 0, "Exit status of fatal errors, 1-255 (default 1)")
	flags.Bool("sequence", false, "Add the diagnostic sequence number to each line")
	flags.Bool("history", false, "Journal diagnostics to the history database")
	flags.String("db-dir", "", "History database directory (default: XDG data dir)")

	// Add subcommands
	cmd.AddCommand(NewErrorCmd())
	cmd.AddCommand(NewWarningCmd())
	cmd.AddCommand(NewExitCmd())
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewPruneCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
