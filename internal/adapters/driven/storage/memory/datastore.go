package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure DataStore implements the interface.
var _ driven.DataStore = (*DataStore)(nil)

// DataStore is an in-memory implementation of driven.DataStore.
// It holds a deep copy of the last saved snapshot.
type DataStore struct {
	mu       sync.RWMutex
	snapshot domain.DataStore
	saves    int
}

// NewDataStore creates an empty in-memory data store.
func NewDataStore() *DataStore {
	s := &DataStore{}
	s.snapshot.Normalise()
	return s
}

// Load returns a copy of the stored snapshot.
func (s *DataStore) Load(_ context.Context) (domain.DataStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), nil
}

// Save replaces the stored snapshot with a copy of store.
func (s *DataStore) Save(_ context.Context, store domain.DataStore) error {
	snapshot := store.Clone()
	snapshot.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.saves++
	return nil
}

// SaveCount returns how many times Save has been called.
func (s *DataStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
