package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests and development. Values are
// held serialized, so Load always returns an independent copy.
type MemoryStore struct {
	mu      sync.RWMutex
	session []byte
	creds   []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveSession overwrites the stored session snapshot.
func (s *MemoryStore) SaveSession(ctx context.Context, snap *SessionSnapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	s.session = data
	s.mu.Unlock()
	return nil
}

// LoadSession retrieves the stored snapshot.
func (s *MemoryStore) LoadSession(ctx context.Context) (*SessionSnapshot, error) {
	s.mu.RLock()
	data := s.session
	s.mu.RUnlock()

	if data == nil {
		return nil, ErrNotFound
	}
	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &snap, nil
}

// SaveCredentials overwrites the stored credentials.
func (s *MemoryStore) SaveCredentials(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return ErrInvalidSnapshot
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	s.mu.Lock()
	s.creds = data
	s.mu.Unlock()
	return nil
}

// LoadCredentials retrieves stored credentials.
func (s *MemoryStore) LoadCredentials(ctx context.Context) (*Credentials, error) {
	s.mu.RLock()
	data := s.creds
	s.mu.RUnlock()

	if data == nil {
		return nil, ErrNotFound
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &creds, nil
}

// ClearCredentials removes stored credentials.
func (s *MemoryStore) ClearCredentials(ctx context.Context) error {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	return nil
}

// SetSessionRaw stores raw bytes as the session document. Test helper for
// exercising malformed-content handling.
func (s *MemoryStore) SetSessionRaw(data []byte) {
	s.mu.Lock()
	s.session = append([]byte(nil), data...)
	s.mu.Unlock()
}
