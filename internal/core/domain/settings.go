package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// StoreBackend selects the DataStore adapter.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendJSON keeps the whole store in one JSON file.
	StoreBackendJSON StoreBackend = "json"

	// StoreBackendSQLite keeps the store in a SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps the store in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendJSON, StoreBackendSQLite, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendJSON:
		return "JSON file (single document, rewritten on every change)"
	case StoreBackendSQLite:
		return "SQLite database"
	case StoreBackendMemory:
		return "In-memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns every store backend.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendJSON, StoreBackendSQLite, StoreBackendMemory}
}

// StoreSettings configures persistence.
type StoreSettings struct {
	// Backend selects the DataStore adapter.
	Backend StoreBackend

	// DataDir is where the JSON file or SQLite database lives.
	// Empty means the backend's default location.
	DataDir string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained number of mutating requests per second.
	RateLimit float64

	// Burst is the number of mutating requests allowed at once.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store  StoreSettings
	Server ServerSettings
}

// Validate checks that the settings can be used to start the store and
// server.
func (a *AppSettings) Validate() error {
	switch {
	case !a.Store.Backend.IsValid():
		return fmt.Errorf("%w: store backend %q", ErrInvalidInput, a.Store.Backend)
	case strings.TrimSpace(a.Server.Addr) == "":
		return fmt.Errorf("%w: empty server address", ErrInvalidInput)
	case a.Server.RateLimit <= 0:
		return fmt.Errorf("%w: rate limit must be positive, got %g", ErrInvalidInput, a.Server.RateLimit)
	case a.Server.Burst <= 0:
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidInput, a.Server.Burst)
	}
	return nil
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendJSON,
		},
		Server: ServerSettings{
			Addr:      ":3000",
			RateLimit: 5,
			Burst:     10,
		},
	}
}
