package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/focusflow/internal/app"
	focusmcp "github.com/ajitpratap0/focusflow/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  capture_idea   capture a new idea
  list_ideas     list ideas in a mental space or on a date
  complete_idea  toggle an idea's completion
  add_event      add an agenda event
  list_events    list today's, upcoming or completed events

State changes are written to storage as they happen and once more on exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			return withApp(cmd, "mcp", func(_ context.Context, a *app.App) error {
				srv := focusmcp.NewServer(a.Store, logger)

				errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

				logger.Info("mcp: focusflow MCP server starting", "transport", "stdio")

				return mcpserver.ServeStdio(
					srv.MCPServer(),
					mcpserver.WithErrorLogger(errLogger),
				)
			})
		},
	}

	return cmd
}
