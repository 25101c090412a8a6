// Package api exposes expansion, filtering, and generation over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/notegen/notegen/internal/config"
	"github.com/notegen/notegen/internal/generate"
	"github.com/notegen/notegen/internal/pipeline"
)

// Server is the HTTP API server for notegen.
type Server struct {
	router chi.Router
	svc    *pipeline.Service
	orch   *pipeline.Orchestrator
	gen    *generate.Client
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *pipeline.Service, orch *pipeline.Orchestrator, gen *generate.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		svc:  svc,
		orch: orch,
		gen:  gen,
		log:  log,
		cfg:  cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.NotegenAPIKey))

		r.Post("/api/expand", s.handleExpand)
		r.Post("/api/filter", s.handleFilter)
		r.Post("/api/generate", s.handleGenerate)
		r.Post("/api/generate/async", s.handleGenerateAsync)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
