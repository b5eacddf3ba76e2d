package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/urdf"
)

var validateCmd = &cobra.Command{
	Use:   "validate <description>",
	Short: "Check a robot description for consistency",
	Long: `Compiles the description and serializes the resulting tree without writing it,
reporting every problem found in the description.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		engine, _, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}

		robot, err := engine.Compile(cmd.Context(), data)
		if err == nil {
			_, err = urdf.Marshal(robot, urdf.NewConfig())
		}
		if err != nil {
			var agg *domain.AggregateError
			if errors.As(err, &agg) {
				for _, e := range agg.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
				}
				return fmt.Errorf("%s: %d problems found", args[0], len(agg.Errors))
			}
			return fmt.Errorf("%s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %s\n", args[0], urdf.Summary(robot))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
