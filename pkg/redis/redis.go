// Package redis wires the go-redis client used for sessions, booking
// selections, confirmation locks and the rate limiter.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polijecare/polijecare_web/config"
)

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// Options maps the redis config section onto client options, filling
// pool and timeout defaults.
func Options(c config.RedisConfig) *goredis.Options {
	opts := &goredis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  seconds(c.DialTimeoutSeconds, 5),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, 3),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, 3),
	}
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		opts.MinIdleConns = c.MinIdleConns
	}
	return opts
}

// New connects and pings.
func New(ctx context.Context, c config.RedisConfig) (*goredis.Client, error) {
	if c.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}
	rdb := goredis.NewClient(Options(c))

	pingCtx, cancel := context.WithTimeout(ctx, seconds(c.DialTimeoutSeconds, 5))
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
