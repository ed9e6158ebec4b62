package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeService = (*IntakeService)(nil)

// maxFileSize caps how much of a file is read for ingestion.
const maxFileSize = 10 << 20

// IntakeService normalises files and hands them to the dashboard.
type IntakeService struct {
	registry  driven.NormaliserRegistry
	dashboard driving.DashboardService
}

// NewIntakeService creates an intake service.
func NewIntakeService(registry driven.NormaliserRegistry, dashboard driving.DashboardService) *IntakeService {
	return &IntakeService{
		registry:  registry,
		dashboard: dashboard,
	}
}

// IngestFile reads, normalises and ingests one file.
func (s *IntakeService) IngestFile(ctx context.Context, path string, opts driving.IntakeOptions) (*driving.IngestResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, path, maxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw := &domain.RawDocument{
		URI:      path,
		MIMEType: domain.DetectMIMEType(path),
		Content:  content,
	}
	return s.IngestRaw(ctx, raw, opts)
}

// IngestRaw normalises and ingests raw bytes.
func (s *IntakeService) IngestRaw(ctx context.Context, raw *domain.RawDocument, opts driving.IntakeOptions) (*driving.IngestResult, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if raw.MIMEType == "" {
		raw.MIMEType = domain.DetectMIMEType(raw.URI)
	}

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}

	doc := result.Document
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(raw.URI), filepath.Ext(raw.URI))
	}
	if doc.Source == "" {
		doc.Source = domain.SourceKindForPath(raw.URI)
	}
	if opts.Department != "" {
		doc.Department = opts.Department
	}
	if opts.Domain != "" {
		doc.Domain = opts.Domain
	}

	logger.Debug("Normalised %s as %s (%d chars)", raw.URI, raw.MIMEType, len(doc.Content))
	return s.dashboard.Ingest(ctx, []domain.IngestedDocument{doc})
}

// Consume ingests created and updated files until changes closes or
// ctx is cancelled. Deletions are ignored: documents are only removed
// by a reset.
func (s *IntakeService) Consume(
	ctx context.Context,
	changes <-chan domain.RawDocumentChange,
	opts driving.IntakeOptions,
	onError func(uri string, err error),
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if change.Type == domain.ChangeDeleted {
				logger.Debug("Ignoring deletion of %s", change.Document.URI)
				continue
			}
			doc := change.Document
			if _, err := s.IngestRaw(ctx, &doc, opts); err != nil {
				logger.Warn("Failed to ingest %s: %v", doc.URI, err)
				if onError != nil {
					onError(doc.URI, err)
				}
			}
		}
	}
}
