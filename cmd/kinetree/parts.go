package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
	loamAdapter "github.com/aretw0/kinetree/pkg/adapters/loam"
)

var errNoParts = errors.New("no part library: pass --parts or set parts in the configuration file")

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Browse the part library",
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the parts of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openParts()
		if err != nil {
			return err
		}
		parts, err := lib.Parts(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLINKS\tJOINTS\tDESCRIPTION")
		for _, p := range parts {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", p.ID, p.Links, p.Joints, p.Description)
		}
		return w.Flush()
	},
}

var partsRenderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render a single part as URDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if config.Parts == "" {
			return errNoParts
		}
		cfg, err := renderConfig(cmd)
		if err != nil {
			return err
		}
		engine, _, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}
		doc, err := engine.RenderPart(cmd.Context(), args[0], cfg)
		if err != nil {
			return err
		}
		return cli.WriteOutput(cmd.OutOrStdout(), out, doc)
	},
}

func openParts() (*loamAdapter.Library, error) {
	if config.Parts == "" {
		return nil, errNoParts
	}
	return loamAdapter.Open(config.Parts)
}

func init() {
	rootCmd.AddCommand(partsCmd)
	partsCmd.AddCommand(partsListCmd, partsRenderCmd)
	partsRenderCmd.Flags().StringP("out", "o", "", "Write the document to this file instead of stdout")
	addRenderFlags(partsRenderCmd)
}
