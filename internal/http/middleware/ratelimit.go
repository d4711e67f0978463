package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitStore is the part of a Redis client the rate limiter needs.
// *redis.Client satisfies it.
type RateLimitStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimitConfig configures a fixed-window limiter. A non-positive
// MaxRequests disables limiting.
type RateLimitConfig struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

// RateLimit counts requests per client IP in Redis and rejects requests
// beyond MaxRequests within Window with 429. Redis failures let the request
// through.
func RateLimit(store RateLimitStore, cfg RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.MaxRequests <= 0 || store == nil {
			return c.Next()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", cfg.Name, c.IP())

		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()

		count, err := store.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate_limit_unavailable", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		// A counter without an expiry never resets: a new key, or one whose
		// earlier EXPIRE failed, gets the window applied now.
		ttl, err := store.TTL(ctx, key).Result()
		switch {
		case err != nil:
			ttl = cfg.Window
		case ttl < 0:
			if err := store.Expire(ctx, key, cfg.Window).Err(); err != nil {
				logger.Warn("rate_limit_expire_failed", zap.String("key", key), zap.Error(err))
			}
			ttl = cfg.Window
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if int(count) > cfg.MaxRequests {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Seconds())))
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}
