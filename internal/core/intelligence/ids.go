package intelligence

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDSource produces unique identifier suffixes for insights and alerts.
type IDSource interface {
	NewID(t time.Time) string
}

// ulidSource generates ULIDs with monotonic entropy so IDs minted in the
// same millisecond still sort and never collide.
type ulidSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDSource returns the default IDSource.
func NewULIDSource() IDSource {
	return &ulidSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewID returns a ULID string carrying t's millisecond timestamp.
func (s *ulidSource) NewID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}
