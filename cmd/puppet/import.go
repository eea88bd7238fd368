package main

import (
	"context"
	"fmt"

	"github.com/aretw0/puppet/internal/cli"
	redisAdapter "github.com/aretw0/puppet/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the clip library into Redis",
	Long:  `Reads every clip of the Loam library (clips.dir or --dir) and stores it in Redis, ready for clips.source: redis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("redis") {
			cfg.Redis.Addr, _ = flags.GetString("redis")
		}
		if flags.Changed("prefix") {
			cfg.Redis.Prefix, _ = flags.GetString("prefix")
		}

		dst := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		defer dst.Close()

		n, err := cli.Import(context.Background(), cfg.Clips.Dir, dst)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d clip(s) into %s (prefix %q)\n", n, cfg.Redis.Addr, cfg.Redis.Prefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("redis", "localhost:6379", "Redis address (overrides redis.addr)")
	importCmd.Flags().String("prefix", redisAdapter.DefaultPrefix, "Key prefix (overrides redis.prefix)")
}
