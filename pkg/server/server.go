// Package server exposes the moneyflow pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness and build info
//	POST /v1/layout               wire graph → wire layout (JSON)
//	POST /v1/render               wire graph → SVG, PNG, PDF or JSON
//
// Request bodies are wire graphs in JSON, or YAML when the Content-Type
// says so. Query parameters (width, height, style, format, viz, curvature,
// tooltips, labels) map onto [pipeline.Options].
//
// Errors are returned as {"code": ..., "message": ...} with status 400 for
// INVALID_* codes and 500 otherwise. Every response carries an
// X-Request-ID header; a client-supplied value is reused.
//
// Clients may send X-Moneyflow-Namespace to keep their cache entries apart
// from other callers sharing the same backend.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/moneyflow/pkg/config"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

// shutdownTimeout bounds how long in-flight requests get after the serve
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API through one shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds the router. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: string(errors.ErrCodeNotFound), Message: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed on " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
