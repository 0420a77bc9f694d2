package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/backup"
	"github.com/ajitpratap0/focusflow/internal/metrics"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ideas and settings to a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "export", func(_ context.Context, a *app.App) error {
				now := a.Store.Now()
				doc := backup.NewExport(a.Store.State(), now)

				if output == "-" {
					return backup.Write(cmd.OutOrStdout(), doc)
				}
				path := output
				if path == "" {
					path = backup.FileName(now)
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("export: creating output file: %w", err)
				}
				if err := backup.Write(f, doc); err != nil {
					_ = f.Close()
					return fmt.Errorf("export: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("export: closing output file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d ideas to %s\n", len(doc.Ideas), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default focusflow-backup-<date>.json, - for stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace ideas (and settings, when present) from a JSON backup",
		Long: `Reads a backup written by "focusflow export". The ideas in the file replace
the current ideas. Agenda events are kept. Settings are applied only when the
file carries them. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			if args[0] == "-" {
				r = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("import: opening file: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			load, err := backup.ParseImport(r)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			return withApp(cmd, "import", func(_ context.Context, a *app.App) error {
				a.Store.Dispatch(load)
				metrics.Inc(metrics.Imports)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ideas (settings applied: %t)\n", len(load.Ideas), load.Settings != nil)
				return nil
			})
		},
	}
	return cmd
}
