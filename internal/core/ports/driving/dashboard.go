package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// DashboardService owns every write to the data store.
type DashboardService interface {
	// Snapshot returns the current store. An empty or unreadable store
	// is reseeded with demo data and persisted first.
	Snapshot(ctx context.Context) (domain.DataStore, error)

	// Ingest classifies documents and appends them with their insights
	// and alerts. Missing IDs, timestamps and domains are backfilled.
	// Returns domain.ErrNoDocuments for an empty list.
	Ingest(ctx context.Context, docs []domain.IngestedDocument) (*IngestResult, error)

	// Acknowledge marks an alert as acknowledged. It returns false when
	// no alert has that ID, which is not an error.
	Acknowledge(ctx context.Context, alertID string) (bool, error)

	// Reset replaces the store with fresh demo data.
	Reset(ctx context.Context) (domain.DataStore, error)
}

// IngestResult reports what an ingest appended.
type IngestResult struct {
	// Documents are the accepted documents after backfilling.
	Documents []domain.IngestedDocument

	// Insights are the new insights, one per processed document.
	Insights []domain.ProcessedInsight

	// Alerts are the new alerts.
	Alerts []domain.Alert

	// Skipped lists IDs of documents that could not be processed.
	Skipped []string
}
