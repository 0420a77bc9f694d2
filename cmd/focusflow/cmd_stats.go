package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show idea and agenda statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "stats", func(_ context.Context, a *app.App) error {
				w := cmd.OutOrStdout()
				stats := a.Store.Stats()

				_, _ = fmt.Fprintf(w, "Ideas: %d total, %d active, %d completed, %d archived, %d urgent\n",
					stats.TotalIdeas, stats.ActiveIdeas, stats.CompletedIdeas, stats.ArchivedIdeas, stats.UrgentIdeas)
				_, _ = fmt.Fprintf(w, "Events: %d total, %d upcoming, %d completed\n\n",
					stats.TotalEvents, stats.UpcomingEvents, stats.CompletedEvents)

				layers := make([]string, 0, len(stats.IdeasByLayer))
				for l := range stats.IdeasByLayer {
					layers = append(layers, l)
				}
				sort.Strings(layers)
				_, _ = fmt.Fprintln(w, "By layer:")
				for _, l := range layers {
					_, _ = fmt.Fprintf(w, "  %-12s %d\n", l, stats.IdeasByLayer[l])
				}
				return nil
			})
		},
	}
}
