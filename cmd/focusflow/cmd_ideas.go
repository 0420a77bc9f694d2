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

func captureCmd() *cobra.Command {
	var draft state.IdeaDraft
	var layer, energy, status, ideaType string

	cmd := &cobra.Command{
		Use:   "capture [title]",
		Short: "Capture a new idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Title = strings.Join(args, " ")
			draft.Layer = models.Layer(layer)
			draft.EnergyBlock = models.EnergyLevel(energy)
			draft.Status = models.IdeaStatus(status)
			draft.Type = models.IdeaType(ideaType)
			if err := draft.Validate(); err != nil {
				return fmt.Errorf("capture: %w", err)
			}

			return withApp(cmd, "capture", func(_ context.Context, a *app.App) error {
				idea := a.Store.AddIdea(draft)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Captured idea %s\n", idea.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Description, "description", "", "longer description")
	cmd.Flags().StringVar(&layer, "layer", "", "layer: personal, trabajo, proyectos, inspiracion, referencias")
	cmd.Flags().StringVar(&energy, "energy", "", "energy block: alta, media, baja")
	cmd.Flags().StringVar(&status, "status", "", "status: semilla, en_desarrollo, lista")
	cmd.Flags().StringVar(&ideaType, "type", "", "type: idea, proyecto")
	cmd.Flags().StringVar(&draft.Date, "date", "", "scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Time, "time", "", "scheduled time (HH:mm)")
	cmd.Flags().BoolVar(&draft.IsUrgent, "urgent", false, "mark as urgent")
	return cmd
}

func ideasCmd() *cobra.Command {
	var space, date, layer string

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "List ideas in a mental space (default: the configured one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "ideas", func(_ context.Context, a *app.App) error {
				s := a.Store.State()

				var out []models.Idea
				var title string
				switch {
				case date != "":
					out = query.IdeasByDate(s.Ideas, date)
					title = "Ideas on " + date
				default:
					sp := s.Settings.ActiveSpace
					if space != "" {
						sp = models.MentalSpace(space)
					}
					if !sp.IsValid() {
						return fmt.Errorf("ideas: unknown space %q", sp)
					}
					out = query.IdeasInSpace(s.Ideas, sp, a.Store.Now())
					title = "Ideas: " + string(sp)
				}

				filter := s.Settings.ActiveLayer
				if filter == "" {
					filter = models.LayerAll
				}
				if layer != "" {
					filter = models.LayerFilter(layer)
				}
				if !filter.IsValid() {
					return fmt.Errorf("ideas: unknown layer %q", filter)
				}
				printIdeas(cmd.OutOrStdout(), title, query.InLayer(out, filter))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&space, "space", "", "mental space: hoy, activas, recientes, archivadas, calendario")
	cmd.Flags().StringVar(&date, "date", "", "only ideas scheduled on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&layer, "layer", "", "layer filter, or todas")
	return cmd
}

func ideaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idea",
		Short: "Change a single idea",
	}
	cmd.AddCommand(
		ideaUpdateCmd(),
		ideaActionCmd("archive", "Toggle an idea's archived flag", func(id string) state.Action { return state.ArchiveIdea{ID: id} }),
		ideaActionCmd("complete", "Toggle an idea's completion", func(id string) state.Action { return state.CompleteIdea{ID: id} }),
		ideaActionCmd("delete", "Delete an idea", func(id string) state.Action { return state.DeleteIdea{ID: id} }),
	)
	return cmd
}

// ideaActionCmd builds a subcommand that dispatches one id transition.
func ideaActionCmd(name, short string, build func(id string) state.Action) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [idea-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, "idea "+name, func(_ context.Context, a *app.App) error {
				if _, ok := a.Store.State().FindIdea(id); !ok {
					return fmt.Errorf("idea %s: %q not found", name, id)
				}
				a.Store.Dispatch(build(id))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, id)
				return nil
			})
		},
	}
}

func ideaUpdateCmd() *cobra.Command {
	var title, description, layer, status, energy, date, clock string
	var isUrgent bool

	cmd := &cobra.Command{
		Use:   "update [idea-id]",
		Short: "Update fields of an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := state.IdeaPatch{ID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("layer") {
				l := models.Layer(layer)
				patch.Layer = &l
			}
			if flags.Changed("status") {
				s := models.IdeaStatus(status)
				patch.Status = &s
			}
			if flags.Changed("energy") {
				e := models.EnergyLevel(energy)
				patch.EnergyBlock = &e
			}
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("time") {
				patch.Time = &clock
			}
			if flags.Changed("urgent") {
				patch.IsUrgent = &isUrgent
			}
			if err := patch.Validate(); err != nil {
				return fmt.Errorf("idea update: %w", err)
			}

			return withApp(cmd, "idea update", func(_ context.Context, a *app.App) error {
				if _, ok := a.Store.State().FindIdea(patch.ID); !ok {
					return fmt.Errorf("idea update: %q not found", patch.ID)
				}
				a.Store.UpdateIdea(patch)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated idea %s\n", patch.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&layer, "layer", "", "new layer")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&energy, "energy", "", "new energy block")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD, empty to clear)")
	cmd.Flags().StringVar(&clock, "time", "", "new time (HH:mm, empty to clear)")
	cmd.Flags().BoolVar(&isUrgent, "urgent", false, "urgent flag")
	return cmd
}
