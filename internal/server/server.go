// Package server provides the HTTP REST API for the job scrape dashboard.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/pipeline"
)

// Store is the record persistence surface the handlers use.
type Store interface {
	ListJobs(ctx context.Context, query string) ([]db.JobRecord, error)
	UpdateJob(ctx context.Context, id uuid.UUID, patch db.JobPatch) (*db.JobRecord, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

// Runner executes a full scrape pipeline run for a submitted URL.
type Runner interface {
	Run(ctx context.Context, sourceURL string) (*pipeline.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	runner     Runner
	jwtSecret  string
	log        zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	JWTSecret string
}

// New creates a new server instance. When cfg.JWTSecret is empty the API is
// open; otherwise every route except /health requires a bearer token.
func New(cfg Config, store Store, runner Runner, logger zerolog.Logger) *Server {
	s := &Server{
		store:     store,
		runner:    runner,
		jwtSecret: cfg.JWTSecret,
		log:       logger,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Scrape endpoint. The colon is a literal path character, not a matcher.
	mux.HandleFunc("POST /jobs:scrape", s.handleScrapeJobs)

	// Record endpoints. PATCH and DELETE address records by id in the body.
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("PATCH /jobs", s.handlePatchJob)
	mux.HandleFunc("DELETE /jobs", s.handleDeleteJob)
	mux.HandleFunc("GET /jobs/export", s.handleExportJobs)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.withAuth(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for scrape runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
