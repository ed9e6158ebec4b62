package httpapi

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// failingDashboard is a driving.DashboardService whose every call fails.
type failingDashboard struct {
	err error
}

func (f *failingDashboard) Snapshot(_ context.Context) (domain.DataStore, error) {
	return domain.DataStore{}, f.err
}

func (f *failingDashboard) Ingest(_ context.Context, _ []domain.IngestedDocument) (*driving.IngestResult, error) {
	return nil, f.err
}

func (f *failingDashboard) Acknowledge(_ context.Context, _ string) (bool, error) {
	return false, f.err
}

func (f *failingDashboard) Reset(_ context.Context) (domain.DataStore, error) {
	return domain.DataStore{}, f.err
}
