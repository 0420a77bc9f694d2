package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/query"
	"github.com/ajitpratap0/focusflow/internal/state"
)

func eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage agenda events",
	}
	cmd.AddCommand(eventAddCmd(), eventListCmd(), eventCompleteCmd(), eventDeleteCmd())
	return cmd
}

func eventAddCmd() *cobra.Command {
	var draft state.EventDraft
	var kind, anxiety, priority, recurrence string
	var days []int

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an agenda event",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Title = strings.Join(args, " ")
			draft.Kind = models.EventKind(kind)
			draft.AnxietyLevel = models.AnxietyLevel(anxiety)
			draft.PriorityLevel = models.PriorityLevel(priority)
			draft.Recurrence = models.Recurrence(recurrence)
			draft.RecurrenceDays = days
			if err := draft.Validate(); err != nil {
				return fmt.Errorf("event add: %w", err)
			}

			return withApp(cmd, "event add", func(_ context.Context, a *app.App) error {
				ev := a.Store.AddEvent(draft)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added event %s on %s at %s\n", ev.ID, ev.Date, ev.Time)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Date, "date", "", "event date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&draft.Time, "time", "", "event time (HH:mm, required)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "event description")
	cmd.Flags().StringVar(&kind, "kind", "", "kind: evento, recordatorio, cumpleanos, obligacion")
	cmd.Flags().StringVar(&anxiety, "anxiety", "", "anxiety level: bajo, medio, alto")
	cmd.Flags().StringVar(&priority, "priority", "", "priority: baja, normal, alta, urgente")
	cmd.Flags().StringVar(&recurrence, "repeat", "", "recurrence: no_repite, diario, semanal, mensual, anual, personalizado")
	cmd.Flags().IntSliceVar(&days, "days", nil, "weekdays for weekly or custom recurrence (0 = Sunday)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func eventListCmd() *cobra.Command {
	var view, date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agenda events (today, upcoming or completed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "event list", func(_ context.Context, a *app.App) error {
				if date != "" {
					out := a.Store.EventsByDate(date)
					query.SortChronologically(out)
					printEvents(cmd.OutOrStdout(), "Events on "+date, out)
					return nil
				}
				switch view {
				case "upcoming":
					printEvents(cmd.OutOrStdout(), "Upcoming events", a.Store.UpcomingEvents())
				case "today":
					out := a.Store.EventsToday()
					query.SortChronologically(out)
					printEvents(cmd.OutOrStdout(), "Today "+a.Store.Today(), out)
				case "completed":
					printEvents(cmd.OutOrStdout(), "Completed events", a.Store.CompletedEvents())
				default:
					return fmt.Errorf("event list: unknown view %q", view)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&view, "view", "upcoming", "today, upcoming or completed")
	cmd.Flags().StringVar(&date, "date", "", "pending events on this date (YYYY-MM-DD)")
	return cmd
}

func eventCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [event-id]",
		Short: "Toggle an event's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, "event complete", func(_ context.Context, a *app.App) error {
				if _, ok := a.Store.State().FindEvent(id); !ok {
					return fmt.Errorf("event complete: %q not found", id)
				}
				a.Store.CompleteEvent(id)
				ev, _ := a.Store.State().FindEvent(id)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Event %s completed=%t\n", id, ev.Completed)
				return nil
			})
		},
	}
}

func eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [event-id]",
		Short: "Delete an agenda event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, "event delete", func(_ context.Context, a *app.App) error {
				if _, ok := a.Store.State().FindEvent(id); !ok {
					return fmt.Errorf("event delete: %q not found", id)
				}
				a.Store.DeleteEvent(id)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", id)
				return nil
			})
		},
	}
}
