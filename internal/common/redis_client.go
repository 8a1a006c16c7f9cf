package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/logging"
)

const redisConnectAttempts = 5

// NewRedisClient connects to Redis, retrying while the server comes up.
// Sessions cannot be kept without it, so a failed connection is an error.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()
	logging.Info("Initializing Redis client", "addr", addr, "db", cfg.DB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	var err error
	for attempt := 1; attempt <= redisConnectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logging.Info("Connected to Redis", "addr", addr)
			return client, nil
		}
		logging.Warn("Failed to ping Redis", "attempt", attempt, "error", err.Error())

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
}
