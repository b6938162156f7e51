package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/learnpath/backend/internal/models"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryStore is an in-process session store for single-instance deployments and tests.
// Sessions are copied on every call. Like the Redis store, a session expires ttl after its last
// save; a ttl of zero or less keeps sessions until they are cleared.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]memoryEntry
	finalized map[string]time.Time
}

// NewMemoryStore creates an empty in-process session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]memoryEntry),
		finalized: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Initialize(ctx context.Context, ps *models.PlaySession) error {
	prepare(ps, s.now().UTC())

	s.mu.Lock()
	s.evictExpired()
	s.mu.Unlock()

	return s.Save(ctx, ps)
}

func (s *MemoryStore) Load(_ context.Context, userID int, id string) (*models.PlaySession, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok && s.expired(entry.expiresAt) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	var ps models.PlaySession
	if err := json.Unmarshal(entry.raw, &ps); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if ps.UserID != userID {
		return nil, models.ErrSessionNotFound
	}
	return &ps, nil
}

func (s *MemoryStore) Save(_ context.Context, ps *models.PlaySession) error {
	raw, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	s.sessions[ps.ID] = memoryEntry{raw: raw, expiresAt: s.expiry()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) MarkFinalized(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, ok := s.finalized[id]; ok && !s.expired(expiresAt) {
		return false, nil
	}
	s.finalized[id] = s.expiry()
	return true, nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

// expired treats a zero expiry as never
func (s *MemoryStore) expired(expiresAt time.Time) bool {
	return !expiresAt.IsZero() && !s.now().Before(expiresAt)
}

// evictExpired must be called with mu held
func (s *MemoryStore) evictExpired() {
	for id, entry := range s.sessions {
		if s.expired(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	for id, expiresAt := range s.finalized {
		if s.expired(expiresAt) {
			delete(s.finalized, id)
		}
	}
}
