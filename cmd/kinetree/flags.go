package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/pkg/urdf"
)

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("indent", "", "Indentation: a width in spaces, 'tab' or 'flat'")
	cmd.Flags().String("materials", "", "Material references: 'all', 'multi' or 'inline'")
	cmd.Flags().String("target", "", "Hardware interface flavor: 'standard' or 'gazebo'")
}

// renderConfig merges the render flags of cmd over the configuration file.
func renderConfig(cmd *cobra.Command) (urdf.Config, error) {
	rc := config.Render
	if cmd.Flags().Changed("indent") {
		rc.Indent, _ = cmd.Flags().GetString("indent")
	}
	if cmd.Flags().Changed("materials") {
		rc.Materials, _ = cmd.Flags().GetString("materials")
	}
	if cmd.Flags().Changed("target") {
		rc.Target, _ = cmd.Flags().GetString("target")
	}
	return rc.URDF()
}
