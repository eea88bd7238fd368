package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/puppet/internal/cli"
	"github.com/aretw0/puppet/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP Server so agents can poke the avatar through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		stack, err := cli.NewStack(cfg, logger)
		if err != nil {
			return err
		}
		defer stack.Close()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		engineErr := make(chan error, 1)
		go func() { engineErr <- stack.Engine.Run(ctx) }()
		if err := stack.Engine.Start(ctx); err != nil {
			return err
		}

		srv := mcp.NewServer(stack.Engine)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting MCP Server (Stdio)")
			err = srv.ServeStdio()
		case "sse":
			logger.Info("Starting MCP Server (SSE)", "port", port)
			err = srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q", transport)
		}

		ctx.Cancel()
		if runErr := <-engineErr; err == nil {
			err = runErr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport to use: stdio or sse")
	mcpCmd.Flags().Int("port", 8080, "Port for SSE transport")
}
