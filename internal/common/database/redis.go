// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"jobbly-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the client used by the quiz cache. Dialing is lazy; call
// PingRedis to verify the server.
func NewRedis(cfg config.RedisConfig) *redis.Client {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     poolSize,
		MinIdleConns: poolSize / 2,
	})
}

func PingRedis(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
