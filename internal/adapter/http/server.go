package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/observability"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Service is the dashboard computation the HTTP layer drives.
type Service interface {
	ReadinessChecker
	Ingest(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error)
	Compute(ctx context.Context, ds *domain.Dataset, species string) (domain.Dashboard, error)
	Publish(ctx context.Context, d domain.Dashboard)
	Areas() domain.ProtectedAreas
	Options() domain.DashboardOptions
}

// Server exposes the dashboard page, its JSON API, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	svc       Service
	store     *session.Store
	metrics   *observability.Metrics
	maxUpload int64
}

// NewServer creates an HTTP server routed by chi. Uploads larger than
// maxUpload bytes are rejected with 413.
func NewServer(addr string, svc Service, store *session.Store, metrics *observability.Metrics, maxUpload int64, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:    logger,
		svc:       svc,
		store:     store,
		metrics:   metrics,
		maxUpload: maxUpload,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", staticHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/areas", s.handleAreas)
		r.Post("/datasets", s.handleUpload)
		r.Route("/datasets/{id}", func(r chi.Router) {
			r.Get("/species", s.handleSpecies)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/charts/{chart}.png", s.handleChart)
			r.Get("/choropleth.geojson", s.handleChoropleth)
			r.Get("/export.xlsx", s.handleExport)
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(svc))
	r.Handle("/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
