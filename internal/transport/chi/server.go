// Package chi is the HTTP transport for the site backend API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/domain"
	domsearch "github.com/gentledental/siteapi/internal/domain/search"
	contentuc "github.com/gentledental/siteapi/internal/usecase/content"
	healthuc "github.com/gentledental/siteapi/internal/usecase/health"
	locatoruc "github.com/gentledental/siteapi/internal/usecase/locator"
	searchuc "github.com/gentledental/siteapi/internal/usecase/search"
)

// Stable error codes surfaced to API consumers.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeNotFound           errorCode = "not_found"
	codeContentUnavailable errorCode = "content_unavailable"
	codeInternalError      errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// CachePurger drops cached content so the next fetch hits the CMS.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// Server holds the API handlers.
type Server struct {
	locator       *locatoruc.Service
	search        *searchuc.Service
	content       *contentuc.Service
	health        *healthuc.Service
	purger        CachePurger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. purger may be nil when no cache store
// is configured.
func NewServer(
	locator *locatoruc.Service,
	search *searchuc.Service,
	content *contentuc.Service,
	health *healthuc.Service,
	purger CachePurger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		locator: locator,
		search:  search,
		content: content,
		health:  health,
		purger:  purger,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrContentUnavailable, http.StatusBadGateway, codeContentUnavailable),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router. adminAuth wraps the
// admin subtree only; public routes stay unauthenticated.
func (s *Server) RegisterRoutes(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/offices", s.Offices)
		r.Get("/articles", s.Articles)
	})

	r.Route("/admin", func(r chi.Router) {
		if adminAuth != nil {
			r.Use(adminAuth)
		}
		r.Post("/cache/purge", s.PurgeCache)
	})
}

type searchResponse struct {
	Query   string             `json:"query"`
	Results []domsearch.Result `json:"results"`
	Total   int                `json:"total"`
}

// Search handles GET /api/search?q=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results := s.search.Search(r.Context(), query)
	if results == nil {
		results = []domsearch.Result{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}

// Offices handles GET /api/offices?p=&miles=. The p parameter carries a
// search-result office name or free text; miles overrides the default radius.
// An unparsable miles value falls back to the default rather than erroring,
// so a hand-edited URL still renders the locator.
func (s *Server) Offices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("p")

	var radius float64
	if raw := q.Get("miles"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}

	view := s.locator.Locate(r.Context(), query, radius)
	writeJSON(w, http.StatusOK, view)
}

// Articles handles GET /api/articles?page=&page_size=.
func (s *Server) Articles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "page must be an integer")
			return
		}
		page = parsed
	}

	pageSize := 0
	if raw := q.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "page_size must be an integer")
			return
		}
		pageSize = parsed
	}

	result, err := s.content.List(r.Context(), page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PurgeCache handles POST /admin/cache/purge.
func (s *Server) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if s.purger == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "no cache configured")
		return
	}
	if err := s.purger.Purge(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidPage,
		domain.ErrContentUnavailable,
		domain.ErrLocationNotResolved,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
