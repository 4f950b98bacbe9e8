// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"minus-backend/internal/common/config"
)

// PostgresClient wraps database/sql with config-driven construction.
type PostgresClient struct {
	*sql.DB
}

// NewPostgresClient opens a pooled connection and verifies it with a ping.
func NewPostgresClient(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return &PostgresClient{DB: db}, nil
}

// Close closes the pool.
func (p *PostgresClient) Close() error {
	return p.DB.Close()
}
