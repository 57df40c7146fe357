// Package database manages the PostgreSQL connection and query execution.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/logging"
	"github.com/ekaya-inc/sqlassist/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Manager opens the connection pool on first use and memoizes it for the
// process lifetime. A failed dial is not cached, so the database coming up
// later just works; until then every query surfaces an inline error.
type Manager struct {
	mu     sync.Mutex
	cfg    *Config
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewManager creates a connection manager. No dial happens here.
func NewManager(cfg *Config, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger.Named("database"),
	}
}

// Pool returns the memoized connection pool, dialing on first use.
func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		return m.pool, nil
	}

	pool, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*pgxpool.Pool, error) {
		return connect(ctx, m.cfg)
	})
	if err != nil {
		m.logger.Warn("Database connection failed",
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	m.logger.Info("Database connection established",
		zap.String("url", logging.SanitizeConnectionString(m.cfg.URL)))
	m.pool = pool
	return m.pool, nil
}

// Close closes the pool if one was opened.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}

func connect(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 5
	}

	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if poolConfig.MaxConnLifetime == 0 {
		poolConfig.MaxConnLifetime = time.Hour
	}

	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if poolConfig.MaxConnIdleTime == 0 {
		poolConfig.MaxConnIdleTime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
