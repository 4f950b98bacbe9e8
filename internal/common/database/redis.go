// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"minus-backend/internal/common/config"
)

// RedisClient wraps the go-redis client with config-driven construction.
type RedisClient struct {
	*redis.Client
}

// NewRedisClient creates a Redis connection and verifies it with a ping.
func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	return &RedisClient{Client: client}, nil
}

// Close closes the underlying connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}
