package driving

import "github.com/custodia-labs/compass/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStoreBackend updates the store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// SetDataDir updates the data directory.
	SetDataDir(dir string) error

	// SetServerAddr updates the HTTP listen address.
	SetServerAddr(addr string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
