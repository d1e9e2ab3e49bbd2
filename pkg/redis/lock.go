package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("redis: lock held")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a single-holder lock on one key, acquired with SET NX.
type Lock struct {
	rdb   goredis.Cmdable
	key   string
	token string
}

// Acquire takes the lock for ttl or returns ErrLocked.
func Acquire(ctx context.Context, rdb goredis.Cmdable, key string, ttl time.Duration) (*Lock, error) {
	token := uuid.NewString()
	ok, err := rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{rdb: rdb, key: key, token: token}, nil
}

// Release frees the lock if it has not expired and been taken by someone
// else in the meantime.
func (l *Lock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis: release %s: %w", l.key, err)
	}
	return nil
}
