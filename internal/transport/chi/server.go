package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	"github.com/kailas-cloud/assetsearch/internal/domain/text"
	logpkg "github.com/kailas-cloud/assetsearch/internal/logger"
	"github.com/kailas-cloud/assetsearch/internal/metrics"
	assetuc "github.com/kailas-cloud/assetsearch/internal/usecase/asset"
	cataloguc "github.com/kailas-cloud/assetsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/assetsearch/internal/usecase/health"
	pointuc "github.com/kailas-cloud/assetsearch/internal/usecase/point"
	propertyuc "github.com/kailas-cloud/assetsearch/internal/usecase/property"
	statsuc "github.com/kailas-cloud/assetsearch/internal/usecase/stats"
	"github.com/kailas-cloud/assetsearch/internal/version"
)

const (
	maxBatchSize          = 100
	defaultMaxQueryLength = 256
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinels maps domain errors to HTTP responses, in match order.
var sentinels = []struct {
	err    error
	status int
	code   ErrorCode
}{
	{domain.ErrPointNotFound, http.StatusNotFound, ErrorCodePointNotFound},
	{domain.ErrProductNotFound, http.StatusNotFound, ErrorCodeProductNotFound},
	{domain.ErrAssetNotFound, http.StatusNotFound, ErrorCodeAssetNotFound},
	{domain.ErrPropertyNotFound, http.StatusNotFound, ErrorCodePropertyNotFound},
	{domain.ErrPropertyConflict, http.StatusConflict, ErrorCodePropertyConflict},
	{domain.ErrPropertyInUse, http.StatusConflict, ErrorCodePropertyInUse},
	{domain.ErrInvalidPoint, http.StatusBadRequest, ErrorCodeValidationFailed},
	{domain.ErrInvalidAsset, http.StatusBadRequest, ErrorCodeValidationFailed},
	{domain.ErrInvalidProperty, http.StatusBadRequest, ErrorCodeInvalidProperty},
	{domain.ErrQueryTooLong, http.StatusBadRequest, ErrorCodeQueryTooLong},
}

// Server serves the search API.
type Server struct {
	catalog        *cataloguc.Service
	points         *pointuc.Service
	assets         *assetuc.Service
	properties     *propertyuc.Service
	stats          *statsuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxQueryLength int
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	points *pointuc.Service,
	assets *assetuc.Service,
	properties *propertyuc.Service,
	stats *statsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:        catalog,
		points:         points,
		assets:         assets,
		properties:     properties,
		stats:          stats,
		health:         health,
		logger:         logger,
		maxQueryLength: defaultMaxQueryLength,
		errorHandlers:  []errorHandler{validationHandler, propertyUsageHandler},
	}
	for _, sn := range sentinels {
		s.errorHandlers = append(s.errorHandlers, sentinelHandler(sn.err, sn.status, sn.code))
	}
	return s
}

// WithMaxQueryLength overrides the longest accepted query, in runes.
func (s *Server) WithMaxQueryLength(n int) *Server {
	if n > 0 {
		s.maxQueryLength = n
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/version", s.Version)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", s.SearchProducts)
		r.Get("/products/suggest", s.SuggestProducts)
		r.Post("/products/refresh", s.RefreshProducts)
		r.Get("/products/{name}", s.GetProduct)

		r.Get("/points", s.ListPoints)
		r.Post("/points", s.CreatePoint)
		r.Get("/points/{id}", s.GetPoint)
		r.Patch("/points/{id}", s.PatchPoint)
		r.Delete("/points/{id}", s.DeletePoint)

		r.Get("/assets", s.ListAssets)
		r.Put("/assets", s.UpsertAssets)
		r.Get("/assets/item", s.GetAsset)
		r.Put("/assets/item", s.UpsertAsset)
		r.Delete("/assets/item", s.DeleteAsset)

		r.Get("/properties", s.GetProperties)
		r.Post("/properties", s.AddProperty)
		r.Patch("/properties", s.RenameProperty)
		r.Delete("/properties", s.DeleteProperty)
		r.Get("/properties/usage", s.GetPropertyUsage)

		r.Get("/stats", s.GetStats)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:   info.Version,
		Commit:    info.Commit,
		Date:      info.Date,
		GoVersion: info.GoVersion,
	})
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.stats.Today(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Day:         report.Day,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		Counts:      report.Counts,
	})
}

// checkQuery rejects queries over the configured length before they reach the matcher.
func (s *Server) checkQuery(w http.ResponseWriter, r *http.Request, kind, q string) bool {
	if text.Len(q) <= s.maxQueryLength {
		return true
	}
	metrics.ObserveRejected(kind)
	s.handleDomainError(w, r, domain.ErrQueryTooLong)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, sn := range sentinels {
		if errors.Is(err, sn.err) {
			return sn.err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler exposes the full message of input errors, which carry no internals.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	switch {
	case errors.Is(err, domain.ErrInvalidProperty):
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidProperty, err.Error())
	case errors.Is(err, domain.ErrInvalidPoint), errors.Is(err, domain.ErrInvalidAsset):
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	default:
		return false
	}
	return true
}

// propertyUsageHandler answers a blocked delete with the assets that still use the value.
func propertyUsageHandler(w http.ResponseWriter, err error, msg string) bool {
	var ue *propertyuc.UsageError
	if !errors.As(err, &ue) {
		return false
	}
	writeJSON(w, http.StatusConflict, PropertyInUseResponse{
		ErrorResponse: ErrorResponse{Code: ErrorCodePropertyInUse, Message: msg},
		Count:         len(ue.Paths),
		Paths:         ue.Paths,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := s.requestLogger(r)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// requestLogger prefers the request-scoped logger carrying request_id.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}
