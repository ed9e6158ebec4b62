package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// IntakeService turns files into ingested documents.
type IntakeService interface {
	// IngestFile reads, normalises and ingests one file.
	IngestFile(ctx context.Context, path string, opts IntakeOptions) (*IngestResult, error)

	// IngestRaw normalises and ingests raw bytes.
	IngestRaw(ctx context.Context, raw *domain.RawDocument, opts IntakeOptions) (*IngestResult, error)

	// Consume ingests created and updated files from a change stream until
	// the channel closes or ctx is cancelled. Individual failures are
	// reported through onError and do not stop consumption.
	Consume(ctx context.Context, changes <-chan domain.RawDocumentChange, opts IntakeOptions, onError func(uri string, err error)) error
}

// IntakeOptions carries the labels applied to ingested files.
type IntakeOptions struct {
	// Department is the free-text department label.
	Department string

	// Domain overrides domain detection when set.
	Domain domain.Domain
}
