// Package server exposes the layout pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/platewise/menupress/pkg/cache"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/pipeline"
)

// Server serves the layout API. All state lives in the runner; handlers are
// safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	tuning layout.Tuning
}

// Config carries server construction options.
type Config struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Tuning layout.Tuning
}

// New creates a server. A nil cache disables caching; a zero tuning uses
// the compiled-in defaults.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Tuning == (layout.Tuning{}) {
		cfg.Tuning = layout.DefaultTuning()
	}
	return &Server{
		runner: pipeline.NewRunner(cfg.Cache, cfg.Keyer, cfg.Logger),
		logger: cfg.Logger,
		tuning: cfg.Tuning,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/check", s.handleCheck)
		r.Get("/presets", s.handlePresets)
		r.Get("/templates", s.handleTemplates)
		r.Get("/palettes", s.handlePalettes)
	})
	return r
}

// Close releases the runner's resources.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger assigns a request ID and logs method, path and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
