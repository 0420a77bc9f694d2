package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/focusflow/internal/api"
	"github.com/ajitpratap0/focusflow/internal/app"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			return withApp(cmd, "serve", func(ctx context.Context, a *app.App) error {
				srv := api.NewServer(a.Store, logger, cfg.API.AuthToken)

				if cfg.API.AuthToken == "" {
					logger.Warn("HTTP API: auth is DISABLED; set FOCUSFLOW_API_AUTH_TOKEN or api.auth_token for production use")
				}

				httpSrv := &http.Server{
					Addr:              cfg.API.ListenAddr,
					Handler:           srv.Handler(),
					ReadHeaderTimeout: 10 * time.Second,
					ReadTimeout:       30 * time.Second,
					WriteTimeout:      60 * time.Second,
					IdleTimeout:       120 * time.Second,
				}

				errCh := make(chan error, 1)
				go func() {
					logger.Info("HTTP API server starting", "addr", cfg.API.ListenAddr)
					if listenErr := httpSrv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
						errCh <- fmt.Errorf("serve: HTTP server: %w", listenErr)
					}
					close(errCh)
				}()

				select {
				case <-ctx.Done():
					logger.Info("shutting down")
				case startErr := <-errCh:
					return startErr
				}

				const shutdownTimeout = 10 * time.Second
				if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
					return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
				}
				return <-errCh
			})
		},
	}
	return cmd
}
