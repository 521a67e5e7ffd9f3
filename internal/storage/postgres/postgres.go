// Package postgres stores save slots in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
)

// Pool is the connection pool behind the saves table.
type Pool struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect opens a pool for cfg and waits until the server answers a ping.
// A failed ping is retried with exponential backoff up to cfg.ConnectRetries
// times, so a game started alongside its database does not fail on the race.
//
// Precondition: cfg has passed config validation.
// Postcondition: Returns a Pool that has answered a ping, or a non-nil error
// with nothing left open.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.ConnectRetries)),
		ctx,
	)
	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, wait time.Duration) {
		logger.Warn("postgres not ready, retrying",
			zap.String("host", cfg.Host),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool, logger: logger}, nil
}

// Saves returns the save-slot repository over this pool.
//
// Precondition: the saves table exists (see Migrate).
func (p *Pool) Saves() *SaveRepository {
	return &SaveRepository{db: p.pool}
}

// Close releases all connections. It always returns nil so Pool can be used
// where an io.Closer is expected.
func (p *Pool) Close() error {
	p.pool.Close()
	p.logger.Debug("postgres pool closed")
	return nil
}
