package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/applerr/internal/database"
)

// defaultRetention is the default age beyond which prune deletes diagnostics.
const defaultRetention = 30 * 24 * time.Hour

// NewPruneCmd creates the prune command.
func NewPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old diagnostics from the journal",
		Long: `Prune deletes journaled diagnostics older than --older-than.

Examples:
  # Keep the last 30 days (default)
  applerr prune

  # Keep the last week
  applerr prune --older-than 168h`,
		Args: cobra.NoArgs,
		RunE: runPruneCmd,
	}

	cmd.Flags().Duration("older-than", defaultRetention, "Delete diagnostics older than this duration")

	return cmd
}

// runPruneCmd executes the prune command.
func runPruneCmd(cmd *cobra.Command, _ []string) error {
	olderThan, err := cmd.Flags().GetDuration("older-than")
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	dbOpts := database.DefaultOptions()
	dbOpts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, dbOpts)
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet, nothing to prune.")
			return nil
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	n, err := db.Prune(ctx, olderThan, time.Now())
	if err != nil {
		return fmt.Errorf("failed to prune journal: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d diagnostic(s) older than %s\n", n, olderThan)
	return nil
}
