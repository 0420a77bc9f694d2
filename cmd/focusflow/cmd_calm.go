package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/state"
)

func calmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "calm [on|off]",
		Short:     "Show or switch calm mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, "calm", func(_ context.Context, a *app.App) error {
				if len(args) == 1 {
					switch args[0] {
					case "on":
						a.Store.Dispatch(state.SetCalmMode{Enabled: true})
					case "off":
						a.Store.Dispatch(state.SetCalmMode{Enabled: false})
					default:
						return fmt.Errorf("calm: expected on or off, got %q", args[0])
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Calm mode: %s\n", onOff(a.Store.State().Settings.CalmMode))
				return nil
			})
		},
	}
	cmd.AddCommand(spaceCmd(), layerCmd())
	return cmd
}

func spaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "space [hoy|activas|recientes|archivadas|calendario]",
		Short: "Set the active mental space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space := models.MentalSpace(args[0])
			if !space.IsValid() {
				return fmt.Errorf("space: unknown space %q", space)
			}
			return withApp(cmd, "space", func(_ context.Context, a *app.App) error {
				a.Store.Dispatch(state.SetActiveSpace{Space: space})
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active space: %s\n", space)
				return nil
			})
		},
	}
}

func layerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layer [layer|todas]",
		Short: "Set the active layer filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layer := models.LayerFilter(args[0])
			if !layer.IsValid() {
				return fmt.Errorf("layer: unknown layer %q", layer)
			}
			return withApp(cmd, "layer", func(_ context.Context, a *app.App) error {
				a.Store.Dispatch(state.SetActiveLayer{Layer: layer})
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active layer: %s\n", layer)
				return nil
			})
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
