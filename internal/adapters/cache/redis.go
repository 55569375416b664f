package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-heatmap/internal/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to the Redis used for the entity cache and the rate limiter.
// The client is only returned once it answers a ping.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(cfg.Options())

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	log.Printf("[CACHE] Connected to redis at %s (db %d)", cfg.Addr(), cfg.DB)
	return rdb, nil
}
