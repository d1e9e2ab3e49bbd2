package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestAcquire_SingleHolder(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newTestClient(t)

	l, err := Acquire(ctx, rdb, "lock:a", 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("lock:a"); ttl != 10*time.Second {
		t.Errorf("ttl: got %v", ttl)
	}
	if _, err := Acquire(ctx, rdb, "lock:a", 10*time.Second); !errors.Is(err, ErrLocked) {
		t.Errorf("second acquire: got %v", err)
	}
	if err := l.Release(ctx); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("lock:a") {
		t.Error("key survived release")
	}
	if _, err := Acquire(ctx, rdb, "lock:a", 10*time.Second); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}

func TestRelease_StaleTokenKeepsOtherHolder(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newTestClient(t)

	stale, err := Acquire(ctx, rdb, "lock:b", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Second)

	current, err := Acquire(ctx, rdb, "lock:b", 10*time.Second)
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}
	if err := stale.Release(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := mr.Get("lock:b")
	if err != nil {
		t.Fatalf("current holder's key deleted: %v", err)
	}
	if got != current.token {
		t.Errorf("token: got %q, want %q", got, current.token)
	}
	if err := current.Release(ctx); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("lock:b") {
		t.Error("key survived release by holder")
	}
}
