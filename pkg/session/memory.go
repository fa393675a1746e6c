package session

import (
	"context"
	"sync"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// MemoryStore keeps the session in process memory. Suitable for tests and
// for child applications whose session may die with the process.
type MemoryStore struct {
	mu   sync.Mutex
	sess token.VerifiedSession
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, sess token.VerifiedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	s.set = true
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (token.VerifiedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return token.VerifiedSession{}, ErrNoSession
	}
	return s.sess, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = token.VerifiedSession{}
	s.set = false
	return nil
}
