package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/intelligence"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/core/seed"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// DashboardService owns the data store read-modify-write cycle.
type DashboardService struct {
	store     driven.DataStore
	processor *intelligence.Processor
	seeder    *seed.Generator
	now       func() time.Time
	newID     func() string

	// mu serialises every load-modify-save cycle.
	mu sync.Mutex
}

// NewDashboardService creates a dashboard service.
// A nil processor or seeder gets the default one.
func NewDashboardService(store driven.DataStore, processor *intelligence.Processor, seeder *seed.Generator) *DashboardService {
	if processor == nil {
		processor = intelligence.NewProcessor()
	}
	if seeder == nil {
		seeder = seed.NewGenerator(processor)
	}
	return &DashboardService{
		store:     store,
		processor: processor,
		seeder:    seeder,
		now:       time.Now,
		newID:     func() string { return "doc-" + uuid.NewString() },
	}
}

// Snapshot returns the current store, seeding it first if empty.
func (s *DashboardService) Snapshot(ctx context.Context) (domain.DataStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Ingest classifies and appends documents.
func (s *DashboardService) Ingest(ctx context.Context, docs []domain.IngestedDocument) (*driving.IngestResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	prepared := make([]domain.IngestedDocument, len(docs))
	for i := range docs {
		doc, err := s.prepare(docs[i])
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		prepared[i] = doc
	}

	batch := s.processor.ProcessBatch(prepared)
	assignDomains(prepared, batch.Insights, batch.Alerts)

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Append(prepared, batch.Insights, batch.Alerts)

	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save data store: %w", err)
	}

	logger.Info("Ingested %d documents: %d insights, %d alerts, %d skipped",
		len(prepared), len(batch.Insights), len(batch.Alerts), len(batch.Skipped))

	return &driving.IngestResult{
		Documents: prepared,
		Insights:  batch.Insights,
		Alerts:    batch.Alerts,
		Skipped:   batch.Skipped,
	}, nil
}

// Acknowledge marks an alert as acknowledged.
// An unknown ID leaves the store untouched.
func (s *DashboardService) Acknowledge(ctx context.Context, alertID string) (bool, error) {
	if strings.TrimSpace(alertID) == "" {
		return false, fmt.Errorf("%w: alert id required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !snapshot.AcknowledgeAlert(alertID) {
		logger.Debug("Acknowledge: no alert %q", alertID)
		return false, nil
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return false, fmt.Errorf("save data store: %w", err)
	}
	return true, nil
}

// Reset replaces the store with fresh demo data.
func (s *DashboardService) Reset(ctx context.Context) (domain.DataStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reseed(ctx)
}

// load returns the stored snapshot, reseeding when it is empty.
// Caller must hold mu.
func (s *DashboardService) load(ctx context.Context) (domain.DataStore, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return domain.DataStore{}, fmt.Errorf("load data store: %w", err)
	}
	if snapshot.IsEmpty() {
		logger.Info("Data store is empty, seeding demo data")
		return s.reseed(ctx)
	}
	snapshot.Normalise()
	return snapshot, nil
}

// reseed writes fresh demo data. Caller must hold mu.
func (s *DashboardService) reseed(ctx context.Context) (domain.DataStore, error) {
	snapshot, err := s.seeder.Generate()
	if err != nil {
		return domain.DataStore{}, fmt.Errorf("generate seed data: %w", err)
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return domain.DataStore{}, fmt.Errorf("save data store: %w", err)
	}
	return snapshot, nil
}

// prepare backfills the fields a client may omit.
func (s *DashboardService) prepare(doc domain.IngestedDocument) (domain.IngestedDocument, error) {
	if doc.ID == "" {
		doc.ID = s.newID()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = s.now().UTC()
	}
	if doc.Source == "" {
		doc.Source = domain.SourceOther
	}
	if !doc.Source.IsValid() {
		return doc, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, doc.Source)
	}

	switch {
	case doc.Domain == "":
		if d, ok := intelligence.DetectDomain(doc.Content, doc.Department); ok {
			doc.Domain = d
		}
	case !doc.Domain.IsValid():
		d, err := domain.ParseDomain(string(doc.Domain))
		if err != nil {
			return doc, fmt.Errorf("%w: %q", err, doc.Domain)
		}
		doc.Domain = d
	}
	return doc, nil
}

// assignDomains copies each document's domain onto its insight and each
// insight's domain onto its alert.
func assignDomains(docs []domain.IngestedDocument, insights []domain.ProcessedInsight, alerts []domain.Alert) {
	byDoc := make(map[string]domain.Domain, len(docs))
	for i := range docs {
		byDoc[docs[i].ID] = docs[i].Domain
	}
	byInsight := make(map[string]domain.Domain, len(insights))
	for i := range insights {
		insights[i].Domain = byDoc[insights[i].DocumentID]
		byInsight[insights[i].ID] = insights[i].Domain
	}
	for i := range alerts {
		alerts[i].Domain = byInsight[alerts[i].InsightID]
	}
}
