package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/lifecycle"
)

func purgeCmd() *cobra.Command {
	var all, dryRun bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete completed ideas (or every idea with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "purge", func(ctx context.Context, a *app.App) error {
				var report *lifecycle.Report
				var err error
				if all {
					report, err = a.Lifecycle.ClearAll(ctx, dryRun)
				} else {
					report, err = a.Lifecycle.ClearCompleted(ctx, dryRun)
				}
				if err != nil {
					return fmt.Errorf("purge: %w", err)
				}

				prefix := "deleted "
				if report.DryRun {
					prefix = "[dry-run] would delete "
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%d ideas\n", prefix, report.Deleted)
				for _, id := range report.IDs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every idea, not only completed ones")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be deleted without deleting")
	return cmd
}
