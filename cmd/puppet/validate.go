package main

import (
	"context"
	"fmt"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/internal/cli"
	"github.com/aretw0/puppet/pkg/cache"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and the clip library",
	Long:  `Loads and validates the configuration, then resolves every clip the sequences reference.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		engine, err := puppet.New("", puppet.WithConfig(cfg), puppet.WithLogger(logger))
		if err != nil {
			return err
		}

		report, err := cli.Validate(context.Background(), engine.Loader(), cfg.Sequences,
			cache.WithLoadTimeout(cfg.Clips.LoadTimeout),
			cache.WithLogger(logger),
		)
		fmt.Printf("Library:    %s\n", engine.Name)
		fmt.Printf("Available:  %d clip(s)\n", len(report.Available))
		fmt.Printf("Referenced: %d clip(s)\n", len(report.Referenced))
		for _, name := range report.Unused {
			fmt.Printf("  unused: %s\n", name)
		}
		if err != nil {
			return err
		}
		fmt.Println("✓ Library is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
