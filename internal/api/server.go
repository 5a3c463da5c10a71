package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/schemagen/internal/config"
	"github.com/dgallion1/schemagen/internal/history"
	"github.com/dgallion1/schemagen/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for schemagen.
type Server struct {
	router  chi.Router
	history *history.Store
	usage   *stats.Usage
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(hist *history.Store, usage *stats.Usage, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		history: hist,
		usage:   usage,
		log:     log,
		cfg:     cfg,
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

	r.Get("/health", s.handleHealth)

	r.Post("/api/schema", s.handleGenerateSchema)
	r.Post("/api/schema/validate", s.handleValidateJSON)
	r.Post("/api/chunks", s.handleChunkText)
	r.Post("/api/extract", s.handleExtract)

	r.Get("/api/history", s.handleListHistory)
	r.Delete("/api/history", s.handleClearHistory)
	r.Get("/api/stats", s.handleUsageStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
