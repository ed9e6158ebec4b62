package driven

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// Normaliser extracts text from raw file bytes.
// Each normaliser handles specific MIME types (e.g. text/plain, message/rfc822).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise turns a raw document into a document draft.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// The draft has Name, Content and Source set. ID, UploadedAt and Domain
// are filled in by the ingest path.
type NormaliseResult struct {
	Document domain.IngestedDocument
}
