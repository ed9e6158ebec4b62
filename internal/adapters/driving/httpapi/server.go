// Package httpapi serves the dashboard data store over HTTP. It keeps the
// /api/data contract of the browser dashboard and adds read-only view routes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// Role header and query parameter carrying the selected domain role.
const (
	RoleHeader = "X-Compass-Role"
	roleQuery  = "role"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 10 << 20

var (
	// ErrMissingDashboardService is returned when the dashboard service is not provided.
	ErrMissingDashboardService = errors.New("httpapi: dashboard service is required")

	// ErrMissingViewService is returned when the view service is not provided.
	ErrMissingViewService = errors.New("httpapi: view service is required")
)

// Ports aggregates the driving ports the HTTP API calls into.
type Ports struct {
	Dashboard driving.DashboardService
	Views     driving.ViewService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Views == nil {
		return ErrMissingViewService
	}
	return nil
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit limits mutating requests to r per second with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(s *Server) {
		if r <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// Server is the HTTP API for Compass.
type Server struct {
	mu       sync.Mutex
	ports    *Ports
	limiter  *rate.Limiter
	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server over the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	defaults := domain.DefaultAppSettings().Server
	s := &Server{ports: ports}
	WithRateLimit(defaults.RateLimit, defaults.Burst)(s)
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/data", s.handleGetData)
	mux.Handle("POST /api/data", s.limit(http.HandlerFunc(s.handlePostData)))
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/domains/{domain}", s.handleDomain)
	mux.HandleFunc("GET /api/domains/{domain}/learning", s.handleLearning)
	mux.HandleFunc("GET /api/graph", s.handleGraph)

	s.handler = s.withRole(mux)
	return s, nil
}

// Handler returns the root handler of the API.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped: %v", err)
		}
	}()

	logger.Info("HTTP API listening on %s", listener.Addr())
	return nil
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Start(addr); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// limit rejects requests beyond the rate limit with 429.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRole resolves the role header or query parameter into the request context.
func (s *Server) withRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(RoleHeader)
		if raw == "" {
			raw = r.URL.Query().Get(roleQuery)
		}
		if raw != "" {
			role, err := domain.ParseDomain(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown role %q", raw))
				return
			}
			r = r.WithContext(domain.WithRole(r.Context(), role))
		}
		logger.Debug("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
