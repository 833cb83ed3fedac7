// Package pg opens the PostgreSQL pool used by the metadata store and
// helps turn driver errors into errx errors.
package pg

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/rise-and-shine/filestorage/internal/logger"
)

// NewPool creates a pgx connection pool. Connections are established lazily.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, errx.Wrap(err)
	}

	poolConfig.MaxConns = cfg.PoolMaxConns
	poolConfig.MinConns = cfg.PoolMinConns
	poolConfig.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	poolConfig.MaxConnLifetime = cfg.PoolMaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return pool, nil
}

// NewBunDB wraps pool into a bun.DB with the query logging and
// OpenTelemetry hooks installed. Closing the returned DB closes the pool's
// database/sql adapter; the pool itself is closed by the caller.
func NewBunDB(pool *pgxpool.Pool, cfg Config, log logger.Logger) *bun.DB {
	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())

	db.AddQueryHook(NewQueryHook(
		log.Named("pg"),
		WithVerbose(cfg.Debug),
		WithSlowQueryThreshold(cfg.SlowQueryThreshold),
	))
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))

	return db
}

// WaitReady pings the pool until the database answers, backing off between
// attempts as configured by cfg.PingAttempts and cfg.PingDelay.
func WaitReady(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger.Logger) error {
	log = log.Named("pg")

	err := retry.Do(
		func() error {
			return pool.Ping(ctx)
		},
		retry.Attempts(cfg.PingAttempts),
		retry.Delay(cfg.PingDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1).With("max_attempts", cfg.PingAttempts).Warnf("database is not ready: %v", err)
		}),
		retry.Context(ctx),
	)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"host": cfg.Host, "database": cfg.Database}))
	}

	return nil
}
