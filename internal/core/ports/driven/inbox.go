package driven

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// Inbox streams files dropped into an upload folder.
type Inbox interface {
	// Root returns the watched directory.
	Root() string

	// Watch listens for file changes until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}
