package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/postline-dev/postline/internal/logger"
)

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key Key) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("page cache get", "key", key.String(), "error", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *Redis) Set(ctx context.Context, key Key, payload []byte) {
	if err := c.rdb.Set(ctx, key.String(), payload, c.ttl).Err(); err != nil {
		logger.Log.Warn("page cache set", "key", key.String(), "error", err)
	}
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}
