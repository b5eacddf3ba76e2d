package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/ports"
	"github.com/aretw0/kinetree/pkg/urdf"
)

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("driver", "", "Document store: "+strings.Join(cli.Drivers, ", "))
	cmd.Flags().String("store-path", "", "Database file of the sqlite driver")
	cmd.Flags().String("redis-addr", "", "Redis address for the redis driver and the lock")
	cmd.Flags().String("prefix", "", "Key prefix for the redis and s3 drivers")
}

// storeConfig merges the store flags of cmd over the configuration file.
func storeConfig(cmd *cobra.Command) cli.StoreConfig {
	sc := config.Store
	flags := cmd.Flags()
	if flags.Changed("driver") {
		sc.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("store-path") {
		sc.Path, _ = flags.GetString("store-path")
	}
	if flags.Changed("redis-addr") {
		sc.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("prefix") {
		sc.Prefix, _ = flags.GetString("prefix")
	}
	return sc
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ports.DocumentStore) error) error {
	sc := storeConfig(cmd)
	if sc.Driver == "" || sc.Driver == cli.DriverMemory {
		logger.Warn("The memory store does not outlive this command", "driver", cli.DriverMemory)
	}
	store, closer, err := cli.OpenStore(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(store)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage rendered robots in a document store",
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <description>",
	Short: "Render a description and store the document under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cfg, err := renderConfig(cmd)
		if err != nil {
			return err
		}
		engine, _, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}
		robot, err := engine.Compile(cmd.Context(), source)
		if err != nil {
			return err
		}
		doc, err := urdf.Marshal(robot, cfg)
		if err != nil {
			return err
		}

		return withStore(cmd, func(store ports.DocumentStore) error {
			err := store.Save(cmd.Context(), &domain.Document{
				Name:      name,
				URDF:      doc,
				Source:    source,
				Summary:   urdf.Summary(robot),
				UpdatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%d bytes)\n", name, len(doc))
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored URDF document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		source, _ := cmd.Flags().GetBool("source")
		return withStore(cmd, func(store ports.DocumentStore) error {
			doc, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data := doc.URDF
			if source {
				data = doc.Source
			}
			return cli.WriteOutput(cmd.OutOrStdout(), out, data)
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored robots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		long, _ := cmd.Flags().GetBool("long")
		return withStore(cmd, func(store ports.DocumentStore) error {
			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if !long {
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUPDATED\tSUMMARY")
			for _, n := range names {
				doc, err := store.Load(cmd.Context(), n)
				if err != nil {
					// expired between List and Load
					logger.Debug("Skipping document", "name", n, "err", err)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", n, doc.UpdatedAt.Format(time.RFC3339), doc.Summary)
			}
			return w.Flush()
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored robot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.DocumentStore) error {
			return store.Delete(cmd.Context(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)

	for _, c := range []*cobra.Command{storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd} {
		addStoreFlags(c)
	}
	addRenderFlags(storePutCmd)
	storeGetCmd.Flags().StringP("out", "o", "", "Write the document to this file instead of stdout")
	storeGetCmd.Flags().Bool("source", false, "Print the stored description instead of the URDF")
	storeListCmd.Flags().BoolP("long", "l", false, "Show update time and summary")
}
