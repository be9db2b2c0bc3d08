// Package api exposes a small read-only HTTP surface over the datastore
// and the generated reports.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/vocradar/vocradar/internal/report"
	"github.com/vocradar/vocradar/internal/scheduler"
	"github.com/vocradar/vocradar/internal/storage"
)

// Server represents the API server.
type Server struct {
	router *chi.Mux
	addr   string
	server *http.Server
}

// NewServer creates a new API server.
func NewServer(store *storage.Store, gen *report.Generator, sched *scheduler.Scheduler, reportsDir, addr string) *Server {
	handlers := NewHandlers(store, gen, sched, reportsDir)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/stats", handlers.GetStats)
		r.Get("/topics/today", handlers.GetTodayTopics)

		r.Route("/report", func(r chi.Router) {
			r.Get("/latest", handlers.GetLatestReport)
			r.Get("/{date}", handlers.GetReportByDate)
		})
	})

	// Admin routes (no auth for development)
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/jobs", handlers.AdminGetJobs)
		r.Post("/jobs/{name}/run", handlers.AdminRunJob)
	})

	return &Server{router: r, addr: addr}
}

// Start starts the API server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
