package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/pkg/crypto"
)

func newCodecStore(t *testing.T) *redisStore {
	t.Helper()
	sealer, err := crypto.NewSealerFromHex("")
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(nil, sealer, &config.Config{}).(*redisStore)
}

func TestEncodeDecode_SealsToken(t *testing.T) {
	s := newCodecStore(t)
	sess := &Session{
		ID:        uuid.New(),
		User:      User{ID: 7, Name: "Sari", Email: "sari@student.polije.ac.id", Role: "user"},
		CreatedAt: time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC),
		Token:     "upstream-secret-token",
	}

	b, err := s.encode(sess)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "upstream-secret-token") {
		t.Fatal("plaintext token stored")
	}

	got, err := s.decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Token != sess.Token || got.User != sess.User || got.ID != sess.ID {
		t.Errorf("decode = %+v", got)
	}
}

func TestDecode_WrongKey(t *testing.T) {
	a := newCodecStore(t)
	b := newCodecStore(t)
	raw, err := a.encode(&Session{ID: uuid.New(), Token: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.decode(raw); err == nil {
		t.Error("expected error opening with a different key")
	}
}

func TestNewStore_Defaults(t *testing.T) {
	s := newCodecStore(t)
	if s.ttl != 24*time.Hour || s.selectionTTL != 30*time.Minute || s.lockTTL != time.Second {
		t.Errorf("defaults = %v %v %v", s.ttl, s.selectionTTL, s.lockTTL)
	}
}

func TestBookingState(t *testing.T) {
	var b BookingState
	if b.HasSelection() || b.HasComplaint() {
		t.Error("zero state should be empty")
	}
	b.SelectedScheduleID, b.CreatedComplaintID = 3, 9
	if !b.HasSelection() || !b.HasComplaint() {
		t.Error("expected selection and complaint")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sess, err := m.Create(ctx, User{ID: 1, Role: "user"}, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SaveBooking(ctx, sess.ID, BookingState{SelectedScheduleID: 4}); err != nil {
		t.Fatal(err)
	}

	l, err := m.LockConfirm(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.LockConfirm(ctx, sess.ID); !errors.Is(err, ErrConfirmLocked) {
		t.Errorf("second lock: got %v", err)
	}
	_ = l.Release(ctx)
	if _, err := m.LockConfirm(ctx, sess.ID); err != nil {
		t.Errorf("lock after release: %v", err)
	}

	if err := m.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v", err)
	}
	if b, _ := m.Booking(ctx, sess.ID); b.HasSelection() {
		t.Error("booking state survived delete")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Authentication.SessionTTLMinutes = 60
	cfg.Counseling.SelectionTTLMinutes = 10
	m := NewMemoryStoreFor(cfg)
	now := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	sess, _ := m.Create(ctx, User{ID: 1, Role: "user"}, "tok")
	_ = m.SaveBooking(ctx, sess.ID, BookingState{SelectedScheduleID: 4})

	now = now.Add(9 * time.Minute)
	if b, _ := m.Booking(ctx, sess.ID); b.SelectedScheduleID != 4 {
		t.Error("booking dropped before its ttl")
	}
	now = now.Add(time.Minute)
	if b, _ := m.Booking(ctx, sess.ID); b.HasSelection() {
		t.Error("booking survived its ttl")
	}

	// Each Get slides the session expiry.
	now = now.Add(50 * time.Minute)
	if _, err := m.Get(ctx, sess.ID); err != nil {
		t.Fatalf("get within ttl: %v", err)
	}
	now = now.Add(59 * time.Minute)
	if _, err := m.Get(ctx, sess.ID); err != nil {
		t.Fatalf("get after slide: %v", err)
	}
	now = now.Add(time.Hour)
	if _, err := m.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after ttl: got %v", err)
	}
}
