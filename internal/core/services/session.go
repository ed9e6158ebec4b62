package services

import (
	"fmt"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// keySessionRole is the config key holding the selected role.
const keySessionRole = "session.role"

// SessionService keeps the selected role in a domain.Session and,
// when a config store is given, persists it across runs.
type SessionService struct {
	session     *domain.Session
	configStore driven.ConfigStore
}

// NewSessionService creates a session service. A previously persisted
// role is restored; an invalid persisted value is ignored.
func NewSessionService(configStore driven.ConfigStore) *SessionService {
	s := &SessionService{
		session:     domain.NewSession(),
		configStore: configStore,
	}
	if configStore != nil {
		if saved := configStore.GetString(keySessionRole); saved != "" {
			role, err := domain.ParseDomain(saved)
			if err != nil {
				logger.Warn("Ignoring saved role %q: %v", saved, err)
			} else {
				_ = s.session.Select(role)
			}
		}
	}
	return s
}

// Select sets and persists the active role.
func (s *SessionService) Select(role domain.Domain) error {
	if err := s.session.Select(role); err != nil {
		return fmt.Errorf("%w: %q", err, role)
	}
	if s.configStore == nil {
		return nil
	}
	if err := s.configStore.Set(keySessionRole, string(role)); err != nil {
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}

// Current returns the active role.
func (s *SessionService) Current() (domain.Domain, bool) {
	return s.session.Current()
}

// Logout clears the active role.
func (s *SessionService) Logout() error {
	s.session.Logout()
	if s.configStore == nil {
		return nil
	}
	if err := s.configStore.Delete(keySessionRole); err != nil {
		return fmt.Errorf("clear role: %w", err)
	}
	return nil
}
