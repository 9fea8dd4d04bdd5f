package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/pipeline"
	"github.com/docsift/docsift/internal/runner"
)

// Server is the HTTP API server for docsift.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	runner       *runner.Runner
	embedStats   *embed.Stats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. embedStats may be nil
// when the embeddings client does not expose latency stats.
func NewServer(orch *pipeline.Orchestrator, run *runner.Runner, embedStats *embed.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		runner:       run,
		embedStats:   embedStats,
		log:          log,
		cfg:          cfg,
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
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/outline", s.handleOutlineSubmit)
		r.Get("/api/outline/{jobID}/status", s.handleOutlineStatus)
		r.Get("/api/outline/{jobID}/result", s.handleOutlineResult)
		r.Get("/api/outline/{jobID}/preview", s.handleOutlinePreview)

		r.Post("/api/relevance", s.handleRelevance)

		r.Get("/api/stats/embeddings", s.handleEmbedStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleEmbedStats(w http.ResponseWriter, r *http.Request) {
	if s.embedStats == nil {
		jsonError(w, "embedding stats unavailable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.embedStats.Snapshot())
}
