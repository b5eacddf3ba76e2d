package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/kinetree/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/kinetree/pkg/adapters/redis"
	s3Adapter "github.com/aretw0/kinetree/pkg/adapters/s3"
	"github.com/aretw0/kinetree/pkg/adapters/sqlite"
	"github.com/aretw0/kinetree/pkg/persistence/middleware"
	"github.com/aretw0/kinetree/pkg/ports"
)

// Store drivers accepted by --driver.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
)

// Drivers lists the accepted drivers in help order.
var Drivers = []string{DriverMemory, DriverSQLite, DriverRedis, DriverS3}

// EncryptionKeyEnv overrides the encryption key of the configuration file.
const EncryptionKeyEnv = "KINETREE_STORE_KEY"

// OpenStore opens the document store selected by cfg, sealing documents
// when an encryption key is configured. The returned closer releases its
// connections and is never nil.
func OpenStore(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (ports.DocumentStore, io.Closer, error) {
	if k := os.Getenv(EncryptionKeyEnv); k != "" {
		cfg.EncryptionKey = k
	}
	var mws []middleware.Middleware
	if cfg.EncryptionKey != "" {
		key, err := middleware.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return nil, nil, err
		}
		mw, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, mw)
	}

	store, closer, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(mws) > 0 {
		logger.Debug("Store encryption enabled", "driver", cfg.Driver)
		store = middleware.Chain(store, mws...)
	}
	return store, closer, nil
}

func openBackend(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (ports.DocumentStore, io.Closer, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return memory.NewStore(), nopCloser{}, nil

	case DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Opened sqlite store", "path", store.Path())
		return store, store, nil

	case DriverRedis:
		var opts []redisAdapter.Option
		if cfg.Prefix != "" {
			opts = append(opts, redisAdapter.WithPrefix(cfg.Prefix))
		}
		if cfg.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.TTL))
		}
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		logger.Debug("Using redis store", "addr", cfg.Redis.Addr)
		return store, store, nil

	case DriverS3:
		s3cfg := s3Adapter.ConfigFromEnv()
		if cfg.Prefix != "" {
			s3cfg.Prefix = cfg.Prefix
		}
		store, err := s3Adapter.New(ctx, s3cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using s3 store", "bucket", s3cfg.Bucket, "prefix", s3cfg.Prefix)
		return store, nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q (want one of %v)", cfg.Driver, Drivers)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
