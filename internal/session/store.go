// Package session owns the lifecycle of upstream sheet-session tokens: one
// durable named slot per user, written only during the login exchange and
// read on every outgoing call.
package session

import (
	"context"
	"sync"
)

// Store persists the raw session token for a user. An absent token reads as
// the empty string, which the endpoint treats as anonymous.
type Store interface {
	// Get returns the persisted token, or "" when none. Never touches the
	// network.
	Get(ctx context.Context, userID string) (string, error)
	// Set persists a non-empty token, or clears the slot when token is "".
	// Idempotent: setting the same value twice has no additional effect.
	Set(ctx context.Context, userID, token string) error
}

// MemoryStore is the in-process Store used in demo mode and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[userID], nil
}

func (s *MemoryStore) Set(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		delete(s.tokens, userID)
		return nil
	}
	s.tokens[userID] = token
	return nil
}
