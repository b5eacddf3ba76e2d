package main

import (
	"fmt"

	"github.com/aretw0/kinetree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kinetree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kinetree version %s\n", kinetree.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
