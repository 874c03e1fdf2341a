package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/shopping-lists/internal/utils"
)

// SignedStore issues self-contained HS256 tokens.  Nothing is stored on
// Create; Delete records the token id until the token would have expired
// anyway.
type SignedStore struct {
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewSignedStore returns a store signing with secret.  An empty secret is
// rejected.
func NewSignedStore(secret string, ttl time.Duration) (*SignedStore, error) {
	if secret == "" {
		return nil, errors.New("session: SESSION_SECRET is required for the jwt backend")
	}
	return &SignedStore{
		secret:  []byte(secret),
		ttl:     ttlOrDefault(ttl),
		revoked: make(map[string]time.Time),
	}, nil
}

func (s *SignedStore) Create(_ context.Context, userID uint64) (string, error) {
	token, _, err := utils.NewSignedSession(s.secret, userID, s.ttl)
	return token, err
}

func (s *SignedStore) Lookup(_ context.Context, token string) (uint64, error) {
	sess, err := utils.ParseSignedSession(s.secret, token)
	if err != nil {
		return 0, ErrNotFound
	}
	s.mu.Lock()
	_, gone := s.revoked[sess.ID]
	s.mu.Unlock()
	if gone {
		return 0, ErrNotFound
	}
	return sess.UserID, nil
}

// Delete revokes the token.  Tokens that no longer verify are ignored.
func (s *SignedStore) Delete(_ context.Context, token string) error {
	sess, err := utils.ParseSignedSession(s.secret, token)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[sess.ID] = sess.Exp
	return nil
}
