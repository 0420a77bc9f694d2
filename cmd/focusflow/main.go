package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/app"
	"github.com/ajitpratap0/focusflow/internal/config"
)

var cfg *config.Config

// closeTimeout bounds the final state write on exit.
const closeTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "focusflow",
		Short: "FocusFlow: capture ideas, plan your agenda, keep calm",
		Long:  "FocusFlow keeps ideas, agenda events and preferences in a local store that survives restarts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		captureCmd(),
		ideasCmd(),
		ideaCmd(),
		eventCmd(),
		calmCmd(),
		exportCmd(),
		importCmd(),
		purgeCmd(),
		statsCmd(),
		storageCmd(),
		routinesCmd(),
		serveCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// withApp opens the application, runs fn and closes it, writing any state
// fn changed before returning.
func withApp(cmd *cobra.Command, name string, fn func(ctx context.Context, a *app.App) error) (err error) {
	logger := newLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: opening store: %w", name, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if closeErr := a.Close(closeCtx); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: saving state: %w", name, closeErr)
		}
	}()

	return fn(ctx, a)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
