package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/config"
)

// MemoryStore keeps sessions in process memory. It backs single-instance
// development runs without Redis and the tests. Expiry follows the Redis
// store: sessions slide on every Get, booking state lapses after the
// selection TTL.
type MemoryStore struct {
	mu           sync.Mutex
	sessions     map[uuid.UUID]Session
	seen         map[uuid.UUID]time.Time
	bookings     map[uuid.UUID]BookingState
	locks        map[uuid.UUID]struct{}
	ttl          time.Duration
	selectionTTL time.Duration
	now          func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore uses the default lifetimes of 24h per session and 30m per
// slot selection.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreFor(&config.Config{})
}

func NewMemoryStoreFor(cfg *config.Config) *MemoryStore {
	return &MemoryStore{
		sessions:     map[uuid.UUID]Session{},
		seen:         map[uuid.UUID]time.Time{},
		bookings:     map[uuid.UUID]BookingState{},
		locks:        map[uuid.UUID]struct{}{},
		ttl:          minutes(cfg.Authentication.SessionTTLMinutes, 24*60),
		selectionTTL: minutes(cfg.Counseling.SelectionTTLMinutes, 30),
		now:          time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, u User, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Session{ID: uuid.New(), User: u, CreatedAt: m.now(), Token: token}
	m.sessions[s.ID] = s
	m.seen[s.ID] = s.CreatedAt
	return &s, nil
}

// Get loads the session and slides its expiry.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if now.Sub(m.seen[id]) >= m.ttl {
		m.drop(id)
		return nil, ErrNotFound
	}
	m.seen[id] = now
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drop(id)
	return nil
}

// drop must be called with mu held.
func (m *MemoryStore) drop(id uuid.UUID) {
	delete(m.sessions, id)
	delete(m.seen, id)
	delete(m.bookings, id)
}

func (m *MemoryStore) Booking(_ context.Context, id uuid.UUID) (BookingState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return BookingState{}, nil
	}
	if m.now().Sub(b.UpdatedAt) >= m.selectionTTL {
		delete(m.bookings, id)
		return BookingState{}, nil
	}
	return b, nil
}

func (m *MemoryStore) SaveBooking(_ context.Context, id uuid.UUID, b BookingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.UpdatedAt = m.now()
	m.bookings[id] = b
	return nil
}

func (m *MemoryStore) ClearBooking(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, id)
	return nil
}

func (m *MemoryStore) LockConfirm(_ context.Context, id uuid.UUID) (Releaser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[id]; held {
		return nil, ErrConfirmLocked
	}
	m.locks[id] = struct{}{}
	return memoryLock{m: m, id: id}, nil
}

type memoryLock struct {
	m  *MemoryStore
	id uuid.UUID
}

func (l memoryLock) Release(context.Context) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	delete(l.m.locks, l.id)
	return nil
}
