// Package chi exposes the search service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/logger"
	"github.com/mediquery/mediquery/internal/metrics"
	healthuc "github.com/mediquery/mediquery/internal/usecase/health"
	"github.com/mediquery/mediquery/internal/usecase/queryproc"
	"github.com/mediquery/mediquery/internal/usecase/retrieval"
)

// Error codes returned in the JSON error envelope.
const (
	codeValidationFailed  = "validation_failed"
	codeEngineUnavailable = "engine_unavailable"
	codeUnauthorized      = "unauthorized"
	codeInternal          = "internal_error"
)

// Server wires the usecases into HTTP handlers.
type Server struct {
	retrieval *retrieval.Service
	processor *queryproc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(
	retrievalSvc *retrieval.Service,
	processor *queryproc.Service,
	health *healthuc.Service,
	log *zap.Logger,
) *Server {
	return &Server{
		retrieval: retrievalSvc,
		processor: processor,
		health:    health,
		logger:    log,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(apiKeys []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/query/process", s.handleProcess)
		r.Get("/suggestions", s.handleSuggestions)
	})

	return r
}

type searchRequestDTO struct {
	Query      string          `json:"query"`
	UserRole   string          `json:"userRole"`
	Filters    request.Filters `json:"filters"`
	Indices    []string        `json:"indices"`
	Size       int             `json:"size"`
	From       int             `json:"from"`
	SearchType string          `json:"searchType"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var dto searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid JSON body")
		return
	}

	params, err := request.New(
		dto.Query, role.Role(dto.UserRole), dto.Filters, dto.Indices,
		dto.Size, dto.From, request.SearchType(dto.SearchType),
	)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	ctx := logger.ContextWithLogger(r.Context(), s.logger)
	resp, err := s.retrieval.Search(ctx, params)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type processRequestDTO struct {
	Query    string `json:"query"`
	UserRole string `json:"userRole"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var dto processRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid JSON body")
		return
	}

	callerRole := role.Role(dto.UserRole)
	if !callerRole.IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "userRole must be clinician or patient")
		return
	}

	processed, err := s.processor.Process(dto.Query, callerRole)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, processed)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": s.processor.Corrections(q),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// writeDomainError maps domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidSearchType):
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrEngineUnavailable):
		s.logger.Error("Engine failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeEngineUnavailable, err.Error())
	default:
		s.logger.Error("Unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
