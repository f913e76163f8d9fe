package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard/pkg/adapters/mcp"
	"github.com/aretw0/flowguard/pkg/ports"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the validation engine as an MCP Server, so AI agents can check the flows they build.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		dir, _ := cmd.Flags().GetString("dir")
		source, _ := cmd.Flags().GetString("source")

		// Logs go to Stderr, never corrupting JSON-RPC on Stdout.
		logger := newLogger(cfg)
		log.SetOutput(os.Stderr)

		var loader ports.FlowLoader
		if dir != "" {
			if loader, err = openLoader(dir, source); err != nil {
				return err
			}
		}
		srv := mcp.NewServer(newValidator(cfg, logger), loader)

		switch transport {
		case "stdio":
			logger.Info("starting flowguard MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting flowguard MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("dir", "", "Directory of flows exposed through validate_stored_flow")
}
