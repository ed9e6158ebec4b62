package domain

import (
	"context"
	"sync"
)

// Session holds the domain role a user selected. It replaces ambient
// global selection state: each adapter owns a Session and passes the
// selected role explicitly to domain-scoped operations.
type Session struct {
	mu   sync.RWMutex
	role Domain
}

// NewSession creates a session with no role selected.
func NewSession() *Session {
	return &Session{}
}

// Select sets the active role.
func (s *Session) Select(role Domain) error {
	if !role.IsValid() {
		return ErrUnknownDomain
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
	return nil
}

// Current returns the active role and whether one is selected.
func (s *Session) Current() (Domain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role, s.role != ""
}

// Logout clears the active role.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = ""
}

type roleKey struct{}

// WithRole returns a context carrying the selected role.
func WithRole(ctx context.Context, role Domain) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the role carried by ctx, if any.
func RoleFromContext(ctx context.Context) (Domain, bool) {
	role, ok := ctx.Value(roleKey{}).(Domain)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
