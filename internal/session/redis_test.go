package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/pkg/crypto"
)

func newRedisStore(t *testing.T) (*redisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sealer, err := crypto.NewSealerFromHex("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	cfg.Counseling.ConfirmLockSeconds = 5
	return NewStore(rdb, sealer, cfg).(*redisStore), mr
}

func TestRedisStore_SessionSlidesTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	sess, err := s.Create(ctx, User{ID: 7, Role: "konselor"}, "tok-7")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := mr.Get(keySession(sess.ID))
	if raw == "" || strings.Contains(raw, "tok-7") {
		t.Fatalf("stored session leaks the raw token: %s", raw)
	}

	mr.FastForward(time.Hour)
	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Token != "tok-7" || got.User.ID != 7 {
		t.Errorf("got %+v", got)
	}
	if ttl := mr.TTL(keySession(sess.ID)); ttl != s.ttl {
		t.Errorf("ttl after get: got %v, want %v", ttl, s.ttl)
	}

	mr.FastForward(s.ttl)
	if _, err := s.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after expiry: got %v", err)
	}
}

func TestRedisStore_BookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	sess, err := s.Create(ctx, User{ID: 1, Role: "user"}, "tok")
	if err != nil {
		t.Fatal(err)
	}

	want := BookingState{SelectedScheduleID: 4, CreatedComplaintID: 41, IdempotencyKey: "key-1"}
	if err := s.SaveBooking(ctx, sess.ID, want); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(keyBooking(sess.ID)); ttl != s.selectionTTL {
		t.Errorf("booking ttl: got %v, want %v", ttl, s.selectionTTL)
	}

	got, err := s.Booking(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SelectedScheduleID != 4 || got.CreatedComplaintID != 41 || got.IdempotencyKey != "key-1" {
		t.Errorf("got %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	if err := s.ClearBooking(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Booking(ctx, sess.ID); b.HasSelection() {
		t.Error("booking state survived clear")
	}

	_ = s.SaveBooking(ctx, sess.ID, want)
	mr.FastForward(s.selectionTTL)
	if b, _ := s.Booking(ctx, sess.ID); b.HasSelection() {
		t.Error("booking state survived its ttl")
	}

	_ = s.SaveBooking(ctx, sess.ID, want)
	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(keySession(sess.ID)) || mr.Exists(keyBooking(sess.ID)) {
		t.Error("delete left keys behind")
	}
}

func TestRedisStore_LockConfirm(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	sess, _ := s.Create(ctx, User{ID: 1, Role: "user"}, "tok")

	l, err := s.LockConfirm(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LockConfirm(ctx, sess.ID); !errors.Is(err, ErrConfirmLocked) {
		t.Errorf("second lock: got %v", err)
	}
	if ttl := mr.TTL(keyConfirm(sess.ID)); ttl != 5*time.Second {
		t.Errorf("lock ttl: got %v", ttl)
	}
	if err := l.Release(ctx); err != nil {
		t.Fatal(err)
	}
	l2, err := s.LockConfirm(ctx, sess.ID)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}

	// A lock that outlived its ttl must not free the next holder's lock.
	mr.FastForward(6 * time.Second)
	l3, err := s.LockConfirm(ctx, sess.ID)
	if err != nil {
		t.Fatalf("lock after expiry: %v", err)
	}
	_ = l2.Release(ctx)
	if _, err := s.LockConfirm(ctx, sess.ID); !errors.Is(err, ErrConfirmLocked) {
		t.Errorf("stale release freed the lock: got %v", err)
	}
	_ = l3.Release(ctx)
}
