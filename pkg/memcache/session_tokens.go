// pkg/memcache/session_tokens.go
package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTokenStore groups a user's lookup+detail calls under one opaque
// token for billing. Tokens are a cost hint, not a correctness
// requirement: a process restart dropping them all is fine.
type SessionTokenStore interface {
	// TokenFor returns the live token for the user, minting a fresh one
	// when none exists or the old one expired.
	TokenFor(userID string) string

	// Peek reads without minting. Returns false when missing/expired.
	Peek(userID string) (string, bool)
}

const sessionTokenTTL = 5 * time.Minute

type sessionEntry struct {
	token     string
	expiresAt time.Time
}

type SessionTokens struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
	now  func() time.Time
}

func NewSessionTokens() *SessionTokens {
	return &SessionTokens{
		data: make(map[string]sessionEntry),
		now:  time.Now,
	}
}

func (s *SessionTokens) TokenFor(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[userID]
	if ok && s.now().Before(e.expiresAt) {
		return e.token
	}

	// Expired entries are replaced here, on access. No sweeper runs.
	e = sessionEntry{
		token:     uuid.New().String(),
		expiresAt: s.now().Add(sessionTokenTTL),
	}
	s.data[userID] = e
	return e.token
}

func (s *SessionTokens) Peek(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[userID]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.token, true
}
