package postgres

import (
	"context"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eklimov/order-management-api/internal/config"
)

// Connect builds a pgx pool from the database configuration and verifies
// it with a ping. numeric columns scan directly into shopspring
// decimal.Decimal via the registered codec.
func Connect(ctx context.Context, dbCfg config.Database) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = dbCfg.MaxConns
	cfg.MinConns = dbCfg.MinConns
	cfg.HealthCheckPeriod = dbCfg.HealthCheckPeriod
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ConnectWait retries Connect until the database answers or attempts run
// out. The database container usually comes up after the service in
// compose setups.
func ConnectWait(ctx context.Context, dbCfg config.Database) (*pgxpool.Pool, error) {
	var lastErr error
	for i := 0; i < dbCfg.WaitAttempts; i++ {
		pool, err := Connect(ctx, dbCfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbCfg.WaitDelay):
		}
	}
	return nil, lastErr
}
