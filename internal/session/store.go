// Package session holds the terminal's bearer credential and the local
// authorization check that gates the protected part of the station.
package session

import "sync"

// Store is the explicit session-context object for the terminal: the single
// place the bearer credential lives between login and logout.
type Store interface {
	// Token returns the stored credential, or "" when no session exists.
	Token() string
	// SetToken replaces the stored credential.
	SetToken(token string)
	// Clear removes the credential.
	Clear()
}

// MemoryStore is the in-process Store used by the station. One station
// instance serves one cashier terminal, so a single slot is enough.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
