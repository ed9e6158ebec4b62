package driving

import "github.com/custodia-labs/compass/internal/core/domain"

// SessionService manages the selected domain role.
type SessionService interface {
	// Select sets and persists the active role.
	Select(role domain.Domain) error

	// Current returns the active role and whether one is selected.
	Current() (domain.Domain, bool)

	// Logout clears the active role.
	Logout() error
}
