// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivityDependencies

	// Ready reports whether the registry is available.
	Ready() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	logger            logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used by request middleware and handlers.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.activitiesHandler = NewActivitiesHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", s.instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.instrument(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", s.instrument(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /activities", s.instrument(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("POST /activities/{activity_name}/signup", s.instrument(s.activitiesHandler.HandleSignup, "signup"))
	mux.HandleFunc("POST /activities/{activity_name}/unregister", s.instrument(s.activitiesHandler.HandleUnregister, "unregister"))
}

func (s *Server) instrument(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger)
}

// messageResponse is the confirmation body of sign-up and unregister.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the body of every error reply. Detail is human readable.
type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Detail: msg})
}

// writeCatalog encodes c with its own ordered marshaller.
func writeCatalog(w http.ResponseWriter, c activity.Catalog) {
	writeJSON(w, http.StatusOK, c)
}

// classify maps an upstream error to a status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return http.StatusBadRequest, "already_signed_up"
	case errors.Is(err, repository.ErrNotSignedUp):
		return http.StatusBadRequest, "not_signed_up"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
