package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render <description>",
	Short: "Render a robot description as URDF",
	Long: `Compiles a YAML robot description and writes the resulting URDF document to
stdout or to --out. With --watch the document is rebuilt whenever the
description or a part of the library changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out, _ := cmd.Flags().GetString("out")
		watch, _ := cmd.Flags().GetBool("watch")

		cfg, err := renderConfig(cmd)
		if err != nil {
			return err
		}
		engine, lib, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}

		build := func(ctx context.Context) error {
			doc, err := engine.RenderFile(ctx, path, cfg)
			if err != nil {
				return err
			}
			if err := cli.WriteOutput(cmd.OutOrStdout(), out, doc); err != nil {
				return err
			}
			logger.Info("Rendered", "description", path, "out", out, "bytes", len(doc))
			return nil
		}

		if !watch {
			return build(cmd.Context())
		}
		if out == "" || out == "-" {
			return errors.New("--watch needs --out")
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		opts := cli.WatchOptions{Path: path, Logger: logger}
		if lib != nil {
			opts.Parts = lib
		}
		if err := cli.Watch(sigCtx, opts, build); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Watcher interrupted", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("out", "o", "", "Write the document to this file instead of stdout")
	renderCmd.Flags().BoolP("watch", "w", false, "Rebuild on changes to the description or the part library")
	addRenderFlags(renderCmd)
}
