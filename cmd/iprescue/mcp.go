package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
	"github.com/Ernest-Sab/IPR-Tool/internal/cli"
	"github.com/Ernest-Sab/IPR-Tool/internal/config"
	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the deformer engine as an MCP Server, so AI agents can create
rescue deformers as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		mesh, _ := cmd.Flags().GetString("mesh")
		rows, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetInt("cols")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err := cli.NewLogger(cfg, debug)
		if err != nil {
			return err
		}

		rt, err := cli.BuildRuntime(cfg, logger, cli.SceneOptions{Mesh: mesh, Rows: rows, Cols: cols})
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := mcp.NewServer(rt.Engine, iprescue.Version)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("mesh", "body", "Name of the sandbox grid mesh")
	mcpCmd.Flags().Int("rows", 10, "Rows of the sandbox grid mesh")
	mcpCmd.Flags().Int("cols", 10, "Columns of the sandbox grid mesh")
}
