package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
)

var (
	config cli.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kinetree",
	Short: "kinetree assembles robot descriptions into URDF documents",
	Long: `kinetree builds kinematic trees from YAML robot descriptions, applies branch
operations such as mirroring and group renaming, and renders the result as URDF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", cli.DefaultConfigFile, "Configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("parts", "", "Directory holding the part library")
}

// loadConfig reads the configuration file and applies the persistent flags
// on top of it.
func loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := cli.LoadConfig(path, flags.Changed("config"))
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("parts") {
		cfg.Parts, _ = flags.GetString("parts")
	}

	l, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	config, logger = cfg, l
	return nil
}
