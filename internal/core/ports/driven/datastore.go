package driven

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// DataStore persists the aggregate snapshot of documents, insights and
// alerts. The contract is get-all / put-all: callers load the whole
// snapshot, modify it, and save it back. Last write wins.
type DataStore interface {
	// Load returns the current snapshot. A store that has never been
	// written returns an empty snapshot and no error.
	Load(ctx context.Context) (domain.DataStore, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, store domain.DataStore) error
}
