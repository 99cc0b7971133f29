package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis connects to Redis at addr. Redis is optional: when addr is empty
// or the server is unreachable the return value is nil and callers fall back
// to running without caching or rate limiting.
func NewRedis(addr string, log *zap.SugaredLogger) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warnw("failed to connect to Redis, caching disabled", "addr", addr, "error", err)
		return nil
	}
	return client
}
