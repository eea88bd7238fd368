package main

import (
	"context"
	"os"

	"github.com/aretw0/puppet/internal/cli"
	"github.com/aretw0/puppet/internal/presentation/tui"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [clip...]",
	Short: "Play clips headless and print lifecycle events",
	Long:  `Plays the given clips in order (or the greeting when none are given) and prints every lifecycle event until the sequence completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if t, _ := cmd.Flags().GetString("transition"); t != "" {
			cfg.Playback.Transition = t
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		printer := tui.NewEventPrinter(os.Stdout)
		stack, err := cli.NewStack(cfg, logger, printer.Hooks())
		if err != nil {
			return err
		}
		defer stack.Close()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Play(ctx, stack, domain.Names(args...))
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("transition", "", "Transition between clips: crossfade or cut (overrides playback.transition)")
}
