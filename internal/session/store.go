package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/pkg/crypto"
	"github.com/polijecare/polijecare_web/pkg/redis"
)

func keySession(id uuid.UUID) string { return "session:" + id.String() }
func keyBooking(id uuid.UUID) string { return "session:" + id.String() + ":booking" }
func keyConfirm(id uuid.UUID) string { return "session:" + id.String() + ":confirm" }

type Store interface {
	Create(ctx context.Context, u User, token string) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Booking(ctx context.Context, id uuid.UUID) (BookingState, error)
	SaveBooking(ctx context.Context, id uuid.UUID, b BookingState) error
	ClearBooking(ctx context.Context, id uuid.UUID) error

	// LockConfirm guards a booking confirmation against repeated clicks.
	LockConfirm(ctx context.Context, id uuid.UUID) (Releaser, error)
}

// Releaser frees a held lock.
type Releaser interface {
	Release(ctx context.Context) error
}

type redisStore struct {
	rdb          goredis.Cmdable
	sealer       *crypto.Sealer
	ttl          time.Duration
	selectionTTL time.Duration
	lockTTL      time.Duration
	now          func() time.Time
}

func NewStore(rdb goredis.Cmdable, sealer *crypto.Sealer, cfg *config.Config) Store {
	return &redisStore{
		rdb:          rdb,
		sealer:       sealer,
		ttl:          minutes(cfg.Authentication.SessionTTLMinutes, 24*60),
		selectionTTL: minutes(cfg.Counseling.SelectionTTLMinutes, 30),
		lockTTL:      time.Duration(max(cfg.Counseling.ConfirmLockSeconds, 1)) * time.Second,
		now:          time.Now,
	}
}

func minutes(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Minute
}

func (s *redisStore) Create(ctx context.Context, u User, token string) (*Session, error) {
	sess := &Session{ID: uuid.New(), User: u, CreatedAt: s.now(), Token: token}
	b, err := s.encode(sess)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, keySession(sess.ID), b, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get loads the session and slides its expiry.
func (s *redisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	b, err := s.rdb.GetEx(ctx, keySession(id), s.ttl).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return s.decode(b)
}

func (s *redisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, keySession(id), keyBooking(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *redisStore) Booking(ctx context.Context, id uuid.UUID) (BookingState, error) {
	var b BookingState
	raw, err := s.rdb.Get(ctx, keyBooking(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return b, nil
	}
	if err != nil {
		return b, fmt.Errorf("redis get booking: %w", err)
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return BookingState{}, fmt.Errorf("decode booking state: %w", err)
	}
	return b, nil
}

func (s *redisStore) SaveBooking(ctx context.Context, id uuid.UUID, b BookingState) error {
	b.UpdatedAt = s.now()
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyBooking(id), raw, s.selectionTTL).Err(); err != nil {
		return fmt.Errorf("store booking state: %w", err)
	}
	return nil
}

func (s *redisStore) ClearBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, keyBooking(id)).Err(); err != nil {
		return fmt.Errorf("clear booking state: %w", err)
	}
	return nil
}

func (s *redisStore) LockConfirm(ctx context.Context, id uuid.UUID) (Releaser, error) {
	l, err := redis.Acquire(ctx, s.rdb, keyConfirm(id), s.lockTTL)
	if errors.Is(err, redis.ErrLocked) {
		return nil, ErrConfirmLocked
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *redisStore) encode(sess *Session) ([]byte, error) {
	sealed, err := s.sealer.Seal(sess.Token)
	if err != nil {
		return nil, fmt.Errorf("seal token: %w", err)
	}
	out := *sess
	out.SealedToken = sealed
	return json.Marshal(out)
}

func (s *redisStore) decode(b []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	token, err := s.sealer.Open(sess.SealedToken)
	if err != nil {
		return nil, fmt.Errorf("open token: %w", err)
	}
	sess.Token = token
	return &sess, nil
}
