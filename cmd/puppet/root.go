package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/puppet/internal/cli"
	"github.com/aretw0/puppet/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "puppet",
	Short: "Puppet sequences animation clips for an interactive avatar",
	Long: `Puppet loads animation clips on demand, plays them back-to-back or cross-faded,
and drives an interaction state machine: a greeting, idle fillers and a fight mode.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: <dir>/puppet.yaml or ./puppet.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the clip library (overrides clips.dir)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of every lifecycle event")
}

// setup resolves the configuration and logger from the persistent flags.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	flags := cmd.Flags()
	opts := cli.Options{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Dir, _ = flags.GetString("dir")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.Debug, _ = flags.GetBool("debug")

	cfg, err := cli.LoadConfig(opts)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, cli.CreateLogger(cfg), nil
}
