package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/internal/presentation/graph"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <description>",
	Short: "Summarize the kinematic tree of a description",
	Long: `Compiles the description and prints its links, joints, materials and
transmissions. The summary is markdown, styled when printed to a terminal.
With --format mermaid a flowchart of the tree is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		engine, _, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}
		overview, err := engine.Inspect(cmd.Context(), data)
		if err != nil {
			return err
		}

		switch format {
		case "markdown", "md":
			return cli.PrintOverview(cmd.OutOrStdout(), overview)
		case "mermaid":
			var overlay *graph.Overlay
			if len(highlight) > 0 {
				overlay = &graph.Overlay{Highlight: highlight}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(overview, overlay))
			return nil
		}
		return fmt.Errorf("unknown format %q (want markdown or mermaid)", format)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown or mermaid")
	inspectCmd.Flags().StringSlice("highlight", nil, "Links to highlight in the mermaid output")
}
