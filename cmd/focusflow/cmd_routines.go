package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/models"
)

func routinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines",
		Short: "Manage routines and today's routine plan",
	}
	cmd.AddCommand(routinesListCmd(), routinesAddCmd(), routinesScheduleCmd(), routinesDoneCmd())
	return cmd
}

func routinesListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved routines and the routines scheduled for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "routines list", func(ctx context.Context, a *app.App) error {
				w := cmd.OutOrStdout()
				day := date
				if day == "" {
					day = a.Store.Today()
				}

				_, _ = fmt.Fprintln(w, bold("Routines"))
				active := a.Routines.Active(ctx)
				if len(active) == 0 {
					_, _ = fmt.Fprintln(w, faint("  No routines saved."))
				}
				for _, rt := range active {
					names := make([]string, 0, len(rt.Modules))
					for _, m := range rt.Modules {
						names = append(names, fmt.Sprintf("%s (%dm)", m.Name, m.Minutes))
					}
					_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", rt.Title, faint(string(rt.Energy)), strings.Join(names, ", "))
				}

				_, _ = fmt.Fprintln(w, bold("\nScheduled for "+day))
				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.AddRow(bold("#"), bold("Time"), bold("Category"), bold("Modules"), bold(""))
				count := 0
				for i, sr := range a.Routines.Scheduled(ctx) {
					if sr.Date != day {
						continue
					}
					count++
					flag := ""
					if sr.Completed {
						flag = done("done")
					}
					tbl.AddRow(strconv.Itoa(i), sr.Time, sr.Category, strings.Join(sr.Modules, ", "), flag)
				}
				if count == 0 {
					_, _ = fmt.Fprintln(w, faint("  Nothing scheduled."))
					return nil
				}
				_, _ = fmt.Fprintln(w, tbl)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD, default today)")
	return cmd
}

// parseModule reads NAME[:MINUTES[:ENERGY]].
func parseModule(s string) (models.RoutineModule, error) {
	parts := strings.SplitN(s, ":", 3)
	m := models.RoutineModule{Name: strings.TrimSpace(parts[0])}
	if m.Name == "" {
		return m, fmt.Errorf("module %q has no name", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return m, fmt.Errorf("module %q: minutes: %w", s, err)
		}
		m.Minutes = n
	}
	if len(parts) > 2 {
		m.Energy = models.EnergyLevel(parts[2])
		if !m.Energy.IsValid() {
			return m, fmt.Errorf("module %q: unknown energy %q", s, parts[2])
		}
	}
	return m, nil
}

func routinesAddCmd() *cobra.Command {
	var energy string
	var modules []string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Save a reusable routine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := models.Routine{
				Title:  strings.Join(args, " "),
				Energy: models.EnergyLevel(energy),
			}
			for _, s := range modules {
				m, err := parseModule(s)
				if err != nil {
					return fmt.Errorf("routines add: %w", err)
				}
				rt.Modules = append(rt.Modules, m)
			}

			return withApp(cmd, "routines add", func(ctx context.Context, a *app.App) error {
				saved, err := a.Routines.AddActive(ctx, rt)
				if err != nil {
					return fmt.Errorf("routines add: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved routine %q with %d modules\n", saved.Title, len(saved.Modules))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&energy, "energy", "", "energy: alta, media, baja")
	cmd.Flags().StringArrayVar(&modules, "module", nil, "module as NAME[:MINUTES[:ENERGY]] (repeatable)")
	return cmd
}

func routinesScheduleCmd() *cobra.Command {
	var sr models.ScheduledRoutine
	var energy string

	cmd := &cobra.Command{
		Use:   "schedule [module...]",
		Short: "Plan a routine of two to four modules for a day",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			sr.Modules = args
			sr.Energy = models.EnergyLevel(energy)
			return withApp(cmd, "routines schedule", func(ctx context.Context, a *app.App) error {
				planned, err := a.Routines.Schedule(ctx, sr)
				if err != nil {
					return fmt.Errorf("routines schedule: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %d modules on %s\n", len(planned.Modules), planned.Date)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sr.Date, "date", "", "day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&sr.Time, "time", "", "start time (HH:mm)")
	cmd.Flags().StringVar(&sr.Block, "block", "", "time block label")
	cmd.Flags().StringVar(&sr.Category, "category", "", "category label")
	cmd.Flags().StringVar(&energy, "energy", "", "energy: alta, media, baja")
	return cmd
}

func routinesDoneCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "done [index]",
		Short: "Mark a scheduled routine as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("routines done: index: %w", err)
			}
			return withApp(cmd, "routines done", func(ctx context.Context, a *app.App) error {
				sr, err := a.Routines.CompleteScheduled(ctx, index)
				if err != nil {
					return fmt.Errorf("routines done: %w", err)
				}
				if message == "" {
					message = fmt.Sprintf("Completed %s", strings.Join(sr.Modules, ", "))
				}
				if _, err := a.Routines.RecordAchievement(ctx, message); err != nil {
					return fmt.Errorf("routines done: recording achievement: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Routine %d completed\n", index)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "achievement message")
	return cmd
}
