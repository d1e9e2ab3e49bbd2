package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/polijecare/polijecare_web/config"
)

const (
	defaultLimitMax        = 60
	defaultLimitExpiration = 30 * time.Second
)

// NewLimiter is a sliding-window limiter keyed by client IP. Counters live
// in Redis when rdb is set so every instance shares them; otherwise they
// are kept in memory.
func NewLimiter(rdb *redis.Client, cfg config.RateLimitConfig) fiber.Handler {
	limit := cfg.Max
	if limit <= 0 {
		limit = defaultLimitMax
	}
	exp := time.Duration(cfg.ExpirationSeconds) * time.Second
	if exp <= 0 {
		exp = defaultLimitExpiration
	}

	lc := limiter.Config{
		Max:               limit,
		Expiration:        exp,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Terlalu banyak permintaan. Silakan coba lagi nanti.",
			})
		},
	}
	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	}
	return limiter.New(lc)
}
