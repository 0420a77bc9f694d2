package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
)

func storageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the underlying key-value store",
	}
	cmd.AddCommand(storageKeysCmd(), storageGetCmd())
	return cmd
}

func storageKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List stored keys and the active tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "storage keys", func(ctx context.Context, a *app.App) error {
				keys, err := a.Storage.Keys(ctx)
				if err != nil {
					return fmt.Errorf("storage keys: %w", err)
				}
				tier := "fallback"
				if a.Storage.Primary(ctx) {
					tier = "primary"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tier: %s\n", tier)
				for _, k := range keys {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
}

func storageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print the raw value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "storage get", func(ctx context.Context, a *app.App) error {
				value, found, err := a.Storage.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("storage get: %w", err)
				}
				if !found {
					return fmt.Errorf("storage get: key %q not found", args[0])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}
