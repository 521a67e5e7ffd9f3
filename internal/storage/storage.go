// Package storage selects and opens the configured save backend.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/save"
	"github.com/cory-johannsen/delve/internal/storage/postgres"
	storeredis "github.com/cory-johannsen/delve/internal/storage/redis"
	"github.com/cory-johannsen/delve/internal/storage/sqlite"
)

// Backend is an open save store plus the function releasing its resources.
type Backend struct {
	Store save.Store
	close func() error
}

// Close releases the backend. It is safe to call on a zero Backend.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open opens the backend named by cfg.Backend. The postgres backend waits for
// the server and applies pending schema migrations before use.
//
// Precondition: cfg must have passed config validation.
// Postcondition: Returns an open Backend or a non-nil error; nothing is
// left open on error.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		logger.Info("using file save store", zap.String("path", cfg.File.Path))
		return &Backend{Store: save.NewFileStore(cfg.File.Path, cfg.Slot)}, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("using sqlite save store", zap.String("path", cfg.SQLite.Path))
		return &Backend{Store: s, close: s.Close}, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		res, err := postgres.Migrate(cfg.Postgres, postgres.Up, 0)
		if err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("migrating postgres store: %w", err)
		}
		logger.Info("using postgres save store",
			zap.String("host", cfg.Postgres.Host),
			zap.Uint("schema_version", res.Version),
		)
		return &Backend{Store: pool.Saves(), close: pool.Close}, nil

	case config.BackendRedis:
		client, err := storeredis.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis save store", zap.String("addr", cfg.Redis.Addr))
		s := storeredis.NewStore(client, cfg.Redis.KeyPrefix)
		return &Backend{Store: s, close: s.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
