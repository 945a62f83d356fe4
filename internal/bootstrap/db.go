package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eplus-at/eplus-resources/config"
	"github.com/eplus-at/eplus-resources/internal/storage/postgres"
)

// HealthPoolSize bounds the pool; it only serves health pings.
const HealthPoolSize = 2

// OpenDB opens the pgx pool behind the health endpoint, using the same
// connection settings as the summary store.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig, timeout time.Duration) (*pgxpool.Pool, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	poolCfg, err := pgxpool.ParseConfig(postgres.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = HealthPoolSize
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := pool.Ping(cctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}
