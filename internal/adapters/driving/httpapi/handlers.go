package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/logger"
)

// Mutation actions accepted by POST /api/data.
const (
	actionAdd         = "add"
	actionClear       = "clear"
	actionAcknowledge = "acknowledge"
)

// dataRequest is the body of POST /api/data.
type dataRequest struct {
	Action    string                    `json:"action"`
	Documents []domain.IngestedDocument `json:"documents,omitempty"`
	AlertID   string                    `json:"alertId,omitempty"`
}

// dataResponse is the success body of POST /api/data.
type dataResponse struct {
	Success      bool  `json:"success"`
	Count        *int  `json:"count,omitempty"`
	Acknowledged *bool `json:"acknowledged,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ports.Dashboard.Snapshot(r.Context())
	if err != nil {
		logger.Error("Read data: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read data")
		return
	}
	snapshot.Normalise()
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handlePostData(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case actionAdd:
		s.addDocuments(w, r, req.Documents)
	case actionClear:
		if _, err := s.ports.Dashboard.Reset(r.Context()); err != nil {
			s.writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Success: true})
	case actionAcknowledge:
		if req.AlertID == "" {
			writeError(w, http.StatusBadRequest, "alertId required")
			return
		}
		ok, err := s.ports.Dashboard.Acknowledge(r.Context(), req.AlertID)
		if err != nil {
			s.writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dataResponse{Success: true, Acknowledged: &ok})
	default:
		writeError(w, http.StatusBadRequest, "Unknown action")
	}
}

func (s *Server) addDocuments(w http.ResponseWriter, r *http.Request, docs []domain.IngestedDocument) {
	if len(docs) == 0 {
		writeError(w, http.StatusBadRequest, "No documents provided")
		return
	}

	result, err := s.ports.Dashboard.Ingest(r.Context(), docs)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	if len(result.Skipped) > 0 {
		logger.Debug("Skipped %d malformed documents: %v", len(result.Skipped), result.Skipped)
	}
	count := len(result.Documents)
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Count: &count})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.ports.Views.Overview(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// handleDashboard serves the dashboard of the role carried by the request.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	role, ok := domain.RoleFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "No role selected")
		return
	}
	s.writeDomainDashboard(w, r, role)
}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(r.PathValue("domain"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown domain")
		return
	}
	s.writeDomainDashboard(w, r, d)
}

func (s *Server) writeDomainDashboard(w http.ResponseWriter, r *http.Request, d domain.Domain) {
	view, err := s.ports.Views.DomainDashboard(r.Context(), d)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleLearning(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(r.PathValue("domain"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown domain")
		return
	}
	writeJSON(w, http.StatusOK, s.ports.Views.Learning(r.Context(), d))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ports.Views.Graph(r.Context()))
}

// writeFailure maps domain errors to client errors and everything else to 500.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoDocuments):
		writeError(w, http.StatusBadRequest, "No documents provided")
	case errors.Is(err, domain.ErrUnknownDomain), errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Process request: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to process request")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
