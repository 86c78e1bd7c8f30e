// Package storage provides the session slot that persists wizard state
// between runs.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.StateStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory state store. Safe for concurrent access.
// States are stored encoded so the memory and SQLite backends agree on
// what survives a round trip.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory state store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		states: make(map[string][]byte),
		log:    log.With("storage"),
	}
}

// Save stores state under sessionID, overwriting any previous value.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, state domain.WizardState) error {
	data, err := EncodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session %s (step=%s)", sessionID, state.CurrentStep)
	s.states[sessionID] = data
	return nil
}

// Load retrieves the state stored under sessionID.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (domain.WizardState, error) {
	s.mu.RLock()
	data, ok := s.states[sessionID]
	s.mu.RUnlock()

	if !ok {
		s.log.Debug("session not found: %s", sessionID)
		return domain.WizardState{}, domain.ErrNotFound
	}
	return DecodeState(data)
}

// Delete removes the state stored under sessionID.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.states, sessionID)
	s.log.Debug("deleted session %s", sessionID)
	return nil
}
