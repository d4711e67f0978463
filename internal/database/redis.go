package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"netbelge/internal/config"
)

// NewRedis builds a client for the configured Redis. An unreachable server is
// only logged: callers such as the login limiter let requests through when
// Redis is down.
func NewRedis(c config.RedisConfig, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("redis_addr", c.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("redis_addr", c.Addr))
	}
	return client
}
