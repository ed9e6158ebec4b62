package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/compass/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/intelligence"
	"github.com/custodia-labs/compass/internal/core/seed"
)

var (
	fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	errLoad = errors.New("disk on fire")
	errSave = errors.New("disk full")
)

// newTestDashboard returns a dashboard over an in-memory store with a
// fixed clock and sequential document IDs.
func newTestDashboard(t *testing.T) (*DashboardService, *memory.DataStore) {
	t.Helper()
	store := memory.NewDataStore()
	return newDashboardOver(store), store
}

func newDashboardOver(store *memory.DataStore) *DashboardService {
	clock := func() time.Time { return fixedTime }
	processor := intelligence.NewProcessor(intelligence.WithClock(clock))
	svc := NewDashboardService(store, processor, seed.NewGenerator(processor).WithClock(clock))
	svc.now = clock

	var mu sync.Mutex
	n := 0
	svc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("doc-test-%d", n)
	}
	return svc
}

// failingStore is a driven.DataStore whose Load or Save can be made to fail.
type failingStore struct {
	loadErr  error
	saveErr  error
	snapshot domain.DataStore
	saves    int
}

func (s *failingStore) Load(_ context.Context) (domain.DataStore, error) {
	if s.loadErr != nil {
		return domain.DataStore{}, s.loadErr
	}
	return s.snapshot.Clone(), nil
}

func (s *failingStore) Save(_ context.Context, store domain.DataStore) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.snapshot = store.Clone()
	return nil
}

// seeded returns a seeded demo store.
func seeded(t *testing.T) domain.DataStore {
	t.Helper()
	store, err := seed.NewGenerator(nil).WithClock(func() time.Time { return fixedTime }).Generate()
	if err != nil {
		t.Fatalf("generate seed: %v", err)
	}
	return store
}
