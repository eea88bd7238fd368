package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/puppet/internal/cli"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "puppet-view",
	Short: "Desktop viewer for the puppet avatar",
	Long:  `Opens a window that drives the engine from its frame loop: hover the model to pick a fight, click to land hits, F to toggle fight mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.Options{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Dir, _ = cmd.Flags().GetString("dir")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")

		cfg, err := cli.LoadConfig(opts)
		if err != nil {
			return err
		}
		// The window drives Advance once per frame.
		cfg.Playback.FrameRate = 0

		stack, err := cli.NewStack(cfg, cli.CreateLogger(cfg))
		if err != nil {
			return err
		}
		defer stack.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		engineErr := make(chan error, 1)
		go func() { engineErr <- stack.Engine.Run(ctx) }()

		if err := stack.Engine.Preload(ctx); err != nil {
			stack.Logger.Warn("Preload incomplete", "err", err)
		}
		if err := stack.Engine.Start(ctx); err != nil {
			return err
		}

		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle(fmt.Sprintf("puppet - %s", stack.Engine.Name))
		if err := ebiten.RunGame(NewViewer(ctx, stack.Engine)); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}

		cancel()
		return <-engineErr
	},
}

func init() {
	rootCmd.Flags().String("config", "", "Configuration file")
	rootCmd.Flags().String("dir", "", "Directory containing the clip library")
	rootCmd.Flags().String("log-level", "", "Log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
