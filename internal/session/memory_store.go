package session

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/shopping-lists/internal/utils"
)

type memoryEntry struct {
	userID uint64
	exp    time.Time
}

// MemoryStore keeps sessions in a mutex-guarded map.  Sessions do not
// survive a restart and are not shared between instances.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttlOrDefault(ttl),
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint64) (string, error) {
	token, err := utils.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.sessions[utils.HashToken(token)] = memoryEntry{userID: userID, exp: s.now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := utils.HashToken(token)
	e, ok := s.sessions[key]
	if !ok {
		return 0, ErrNotFound
	}
	if !s.now().Before(e.exp) {
		delete(s.sessions, key)
		return 0, ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, utils.HashToken(token))
	return nil
}

// prune drops expired entries; callers hold mu.
func (s *MemoryStore) prune() {
	now := s.now()
	for k, e := range s.sessions {
		if !now.Before(e.exp) {
			delete(s.sessions, k)
		}
	}
}
