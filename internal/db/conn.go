package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hurou927/prereq-graph/internal/config"
)

// connectTimeout bounds the initial ping.
const connectTimeout = 10 * time.Second

// NewPool creates a pgx connection pool for reading the course catalog.
// The catalog is read once per run, so the pool is kept small.
func NewPool(ctx context.Context, cfg *config.Connection) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}
	poolCfg.MaxConns = 2
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "prereq-graph"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s@%s/%s: %w", cfg.User, cfg.Host, cfg.Database, err)
	}

	return pool, nil
}
