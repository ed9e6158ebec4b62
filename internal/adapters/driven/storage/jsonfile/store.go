// Package jsonfile stores the whole dashboard snapshot in a single
// pretty-printed JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DataStore = (*Store)(nil)

// DefaultFileName is the data file name inside the data directory.
const DefaultFileName = "mockData.json"

// DefaultDir is the data directory used when none is configured.
const DefaultDir = "data"

// Store is a driven.DataStore backed by one JSON file.
// A missing, unreadable or corrupt file loads as an empty snapshot.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store writing to dataDir/mockData.json.
// If dataDir is empty, defaults to ./data.
func New(dataDir string) *Store {
	if dataDir == "" {
		dataDir = DefaultDir
	}
	return &Store{path: filepath.Join(dataDir, DefaultFileName)}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot from disk.
func (s *Store) Load(ctx context.Context) (domain.DataStore, error) {
	if err := ctx.Err(); err != nil {
		return domain.DataStore{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot domain.DataStore
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("Data file %s does not exist yet", s.path)
	case err != nil:
		logger.Warn("Cannot read data file %s: %v", s.path, err)
	default:
		if err := json.Unmarshal(data, &snapshot); err != nil {
			logger.Warn("Data file %s is corrupt, treating as empty: %v", s.path, err)
			snapshot = domain.DataStore{}
		}
	}

	snapshot.Normalise()
	return snapshot, nil
}

// Save writes the snapshot to disk, creating the directory if needed.
// The file is replaced atomically via a temp file and rename.
func (s *Store) Save(ctx context.Context, store domain.DataStore) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	store.Normalise()
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mockData-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	logger.Debug("Wrote %d documents, %d insights, %d alerts to %s",
		len(store.Documents), len(store.Insights), len(store.Alerts), s.path)
	return nil
}
