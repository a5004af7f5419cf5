package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"servicehub/models"

	"github.com/jonboulle/clockwork"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session state values.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.SessionState, error)
	Save(ctx context.Context, state models.SessionState) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. With a TTL, a session expires when it has
// not been saved for that long, matching the sliding TTL of RedisStore.
type MemoryStore struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	state   models.SessionState
	expires time.Time
}

// NewMemoryStore returns a store whose sessions never expire.
func NewMemoryStore() *MemoryStore {
	return NewExpiringMemoryStore(nil, 0)
}

// NewExpiringMemoryStore returns a store that drops sessions idle for longer than ttl.
func NewExpiringMemoryStore(clock clockwork.Clock, ttl time.Duration) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{clock: clock, ttl: ttl, sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.SessionState, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expires.IsZero() && !s.clock.Now().Before(entry.expires) {
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && cur.expires.Equal(entry.expires) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	state := entry.state
	return &state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state models.SessionState) error {
	entry := memoryEntry{state: state}
	if s.ttl > 0 {
		entry.expires = s.clock.Now().Add(s.ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = entry
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
