package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreBackend    = "store.backend"
	keyStoreDataDir    = "store.data_dir"
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerBurst     = "server.burst"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			DataDir: s.configStore.GetString(keyStoreDataDir),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit: s.getPositiveFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:     s.getPositiveInt(keyServerBurst, defaults.Server.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyStoreBackend, settings.Store.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	if err := s.configStore.Set(keyStoreDataDir, settings.Store.DataDir); err != nil {
		return fmt.Errorf("save store data_dir: %w", err)
	}
	if err := s.configStore.Set(keyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}
	if err := s.configStore.Set(keyServerRateLimit, settings.Server.RateLimit); err != nil {
		return fmt.Errorf("save server rate_limit: %w", err)
	}
	if err := s.configStore.Set(keyServerBurst, settings.Server.Burst); err != nil {
		return fmt.Errorf("save server burst: %w", err)
	}

	return nil
}

// SetStoreBackend updates the store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(keyStoreBackend, backend.String())
}

// SetDataDir updates the data directory.
func (s *SettingsService) SetDataDir(dir string) error {
	return s.configStore.Set(keyStoreDataDir, strings.TrimSpace(dir))
}

// SetServerAddr updates the HTTP listen address.
func (s *SettingsService) SetServerAddr(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("%w: empty server address", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyServerAddr, addr)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getBackend(fallback domain.StoreBackend) domain.StoreBackend {
	b := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if b.IsValid() {
		return b
	}
	return fallback
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getPositiveFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getPositiveInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
