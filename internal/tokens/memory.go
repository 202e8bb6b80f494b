package tokens

import (
	"sync"
	"time"
)

// MemoryStore keeps issued tokens in process memory. Validity is decided
// lazily by comparing the recorded deadline against the clock at lookup
// time rather than with a timer per token, so an idle store accumulates
// at most map entries, which Sweep reclaims.
//
// Tokens live in a single process: behind more than one instance, admin
// logins only stick to the instance that minted them. Deployments that
// scale out should use RedisStore instead.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore creates an in-memory token store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *MemoryStore) Issue() (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.tokens[token] = s.now().Add(s.ttl)
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) IsValid(token string) bool {
	s.mu.RLock()
	deadline, ok := s.tokens[token]
	s.mu.RUnlock()

	return ok && s.now().Before(deadline)
}

// Sweep removes entries whose deadline has passed and returns how many
// were dropped. Correctness does not depend on it; IsValid already
// rejects expired tokens.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, deadline := range s.tokens {
		if !now.Before(deadline) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}
