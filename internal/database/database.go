package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Pool is the slice of *pgxpool.Pool the store layer depends on
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the PostgreSQL connection pool. Zero fields keep pgx defaults.
type PoolConfig struct {
	MaxConns    int32
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
}

// DefaultPoolConfig returns the API server's pool settings for maxConns connections
func DefaultPoolConfig(maxConns int32) PoolConfig {
	return PoolConfig{
		MaxConns:    maxConns,
		MaxConnIdle: DefaultMaxConnIdle,
		MaxConnLife: DefaultMaxConnLife,
	}
}

// parsePoolConfig merges cfg into the settings parsed from connString
func parsePoolConfig(connString string, cfg PoolConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = min(DefaultMinConnections, pc.MaxConns)
	if cfg.MaxConnLife > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLife
	}
	if cfg.MaxConnIdle > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdle
	}
	pc.HealthCheckPeriod = DefaultHealthCheckPeriod
	return pc, nil
}

// NewPool opens a pool and pings it; the pool is closed again if the ping fails
func NewPool(ctx context.Context, connString string, cfg PoolConfig) (*pgxpool.Pool, error) {
	pc, err := parsePoolConfig(connString, cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgConnected,
		"host", pc.ConnConfig.Host,
		"database", pc.ConnConfig.Database,
		"max_conns", pc.MaxConns)
	return pool, nil
}
