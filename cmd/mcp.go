package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xvierd/pomo/internal/adapters/mcp"
	"github.com/xvierd/pomo/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server drives its own session clock and task queue over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol.
		stderr := cmd.ErrOrStderr()
		fmt.Fprintln(stderr, "🚀 Starting MCP server...")
		fmt.Fprintln(stderr, "   The server will communicate via stdio")
		fmt.Fprintln(stderr, "   Press Ctrl+C to stop")

		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, cancel := context.WithCancel(setupSignalHandler())
		defer cancel()

		server := mcp.NewServer(session, Version)
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return services.NewTicker(session, time.Second).Run(ctx)
		})
		g.Go(func() error {
			// Closing stdin ends the session, so stop the ticker too.
			defer cancel()
			return server.Start(ctx)
		})

		if err := g.Wait(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
