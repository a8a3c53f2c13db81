package storage

import (
	"bytes"
	"context"
	"sync"

	"budgetbuddy/internal/core"
)

// MemoryStore keeps the snapshot in process memory only. It backs the
// "memory" data backend and tests; nothing survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore creates a store seeded with snap.
func NewMemoryStore(seed core.Snapshot) (*MemoryStore, error) {
	data, err := MarshalSnapshot(seed)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{data: data}, nil
}

// Load returns a fresh copy of the stored snapshot.
func (s *MemoryStore) Load(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DecodeSnapshot(bytes.NewReader(s.data))
}

// Save stores snap. Identical content does not count as a write.
func (s *MemoryStore) Save(_ context.Context, snap core.Snapshot) error {
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(data, s.data) {
		return nil
	}
	s.data = data
	s.saves++
	return nil
}

// Saves returns how many writes changed the stored content.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
