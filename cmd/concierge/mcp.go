package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stepedge/concierge/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the recommendation service as an MCP Server.
This allows AI agents to drive shopping sessions and search the catalog as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		logger := newLogger(cfg)
		slog.SetDefault(logger)

		advisor, cleanup, err := buildAdvisor(cmd.Context(), cfg, logger)
		if err != nil {
			log.Fatalf("Error initializing concierge: %v", err)
		}
		defer cleanup()

		srv := mcp.NewServer(advisor)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Concierge MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Concierge MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "err", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
