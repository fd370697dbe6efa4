package gateway

import (
	"context"
	"sync"
)

// TokenStore holds the current credential pair. Only login/registration
// completion, successful renewal, and logout write tokens; nothing else does.
type TokenStore interface {
	// Access returns the current access token, "" when absent.
	Access(ctx context.Context) (string, error)
	// Renewal returns the current refresh token, "" when absent.
	Renewal(ctx context.Context) (string, error)
	// SetPair replaces both tokens.
	SetPair(ctx context.Context, access, renewal string) error
	// SetAccess replaces the access token only.
	SetAccess(ctx context.Context, access string) error
	// Clear wipes both tokens and any cached session state.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-memory TokenStore for tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.Mutex
	access  string
	renewal string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Access(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, nil
}

func (s *MemoryStore) Renewal(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renewal, nil
}

func (s *MemoryStore) SetPair(ctx context.Context, access, renewal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.renewal = renewal
	return nil
}

func (s *MemoryStore) SetAccess(ctx context.Context, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.renewal = ""
	return nil
}
