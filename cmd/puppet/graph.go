package main

import (
	"fmt"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/internal/presentation/graph"
	"github.com/aretw0/puppet/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the interaction mode diagram",
	Long:  `Outputs a Mermaid diagram (graph TD) of the interaction modes, labelled with the configured triggers, timers and sequences.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		settings := puppet.Settings(cfg)

		if render, _ := cmd.Flags().GetBool("render"); render {
			out, err := tui.NewRenderer()(graph.Markdown(settings, nil))
			if err != nil {
				return fmt.Errorf("error rendering markdown: %w", err)
			}
			fmt.Print(out)
			return nil
		}

		fmt.Print(graph.GenerateMermaid(settings, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("render", false, "Render a markdown summary with the sequence catalog in the terminal")
}
