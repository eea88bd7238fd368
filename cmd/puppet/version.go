package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/puppet"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of puppet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("puppet version %s\n", strings.TrimSpace(puppet.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
