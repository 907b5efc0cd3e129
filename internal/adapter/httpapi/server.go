// Package httpapi exposes the dashboard API plus the usual health,
// readiness, and metrics endpoints. Handlers are a thin, stateless
// rendering of whatever the dataset store and filter engine produce.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitchside/matchweather/internal/dataset"
	"github.com/pitchside/matchweather/internal/observability"
)

// Server exposes the dashboard API over HTTP.
type Server struct {
	httpServer *http.Server
	store      *dataset.Store
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires the router. The store is the only stateful collaborator;
// everything else is computed per request.
func NewServer(addr string, store *dataset.Store, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/facets", s.handleFacets)
		api.Get("/matches", s.handleMatches)
		api.Get("/summary", s.handleSummary)
		api.Get("/insights", s.handleInsights)
		api.Post("/reload", s.handleReload)
		api.Route("/charts", func(c chi.Router) {
			c.Get("/scatter", s.handleScatter)
			c.Get("/timeline", s.handleTimeline)
			c.Get("/temp-buckets", s.handleTempBuckets)
			c.Get("/weather-types", s.handleWeatherTypes)
		})
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.CheckReadiness(ctx); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ready"})
}
