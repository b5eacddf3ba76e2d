package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aretw0/kinetree"
	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/internal/presentation/tui"
	httpAdapter "github.com/aretw0/kinetree/pkg/adapters/http"
	redisAdapter "github.com/aretw0/kinetree/pkg/adapters/redis"
	"github.com/aretw0/kinetree/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP render server",
	Long: `Serves POST /render and POST /validate, the /robots document store when a
driver is configured, and prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		noStore, _ := cmd.Flags().GetBool("no-store")
		lock, _ := cmd.Flags().GetBool("lock")
		storeCfg := storeConfig(cmd)

		engine, _, err := cli.NewEngine(config.Parts, logger)
		if err != nil {
			return err
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(kinetree.Version),
		}
		if !noStore {
			store, closer, err := cli.OpenStore(cmd.Context(), storeCfg, logger)
			if err != nil {
				return err
			}
			defer closer.Close()
			opts = append(opts, httpAdapter.WithStore(store))

			if lock {
				locker, release := newLocker(store, storeCfg)
				defer release()
				opts = append(opts, httpAdapter.WithLocker(locker))
			}
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpAdapter.NewHandler(engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.ErrOrStderr())

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting kinetree server", "addr", srv.Addr, "store", !noStore, "driver", storeCfg.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("kinetree server stopped gracefully")
		}
		return nil
	},
}

// newLocker returns a redis lock, sharing the store's connection when the
// store is itself redis.
func newLocker(store ports.DocumentStore, cfg cli.StoreConfig) (ports.DistributedLocker, func()) {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = redisAdapter.DefaultPrefix
	}
	if rs, ok := store.(*redisAdapter.Store); ok {
		return redisAdapter.NewLocker(rs.Client(), prefix), func() {}
	}
	client := backend.NewClient(&backend.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return redisAdapter.NewLocker(client, prefix), func() { _ = client.Close() }
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("no-store", false, "Do not mount the /robots routes")
	serveCmd.Flags().Bool("lock", false, "Serialize robot updates with a redis lock")
	addStoreFlags(serveCmd)
}
