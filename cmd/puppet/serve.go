package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/internal/cli"
	"github.com/aretw0/puppet/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the engine with its own frame tick and exposes it over HTTP:

  POST /triggers/{trigger}   pointer_enter, click, activity, toggle
  POST /mode/toggle
  GET  /state, /clips, /healthz, /info
  GET  /events               lifecycle events (SSE)
  GET  /metrics              Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		greet, _ := cmd.Flags().GetBool("greet")

		stack, err := cli.NewStack(cfg, logger)
		if err != nil {
			return err
		}
		defer stack.Close()

		tui.PrintBanner(os.Stdout, puppet.Version)
		fmt.Printf("Serving clips from: %s\n", stack.Engine.Name)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		err = cli.Serve(ctx, stack, cli.ServeOptions{Addr: cfg.HTTP.Addr, Greet: greet})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Server stopped", "signal", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().Bool("greet", true, "Play the greeting on startup")
}
