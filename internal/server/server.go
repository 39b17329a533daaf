package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/pkg/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Form runs the submit workflow. Required.
	Form *graph.Form
	// Renderer builds panel URLs. When nil the url endpoint returns 501.
	Renderer *grafana.Renderer
	// RateLimit is the number of requests per minute and client IP.
	RateLimit int
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// Lock serialises registry access. Share it with other surfaces that
	// use the same Form. A private mutex is used when nil.
	Lock sync.Locker
}

// Server serves the HTTP API.
type Server struct {
	// mu serialises registry access; Registry and Form are not safe for
	// concurrent use.
	mu       sync.Locker
	form     *graph.Form
	renderer *grafana.Renderer
	router   chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	s := &Server{
		mu:       opts.Lock,
		form:     opts.Form,
		renderer: opts.Renderer,
	}
	if s.mu == nil {
		s.mu = &sync.Mutex{}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(AccessLog)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	r.Route("/api/graphs", func(r chi.Router) {
		r.Use(RateLimit(opts.RateLimit, time.Minute))
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{name}", s.handleGet)
		r.Put("/{name}", s.handleUpdate)
		r.Delete("/{name}", s.handleDelete)
		r.Get("/{name}/url", s.handleURL)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logging.Info("HTTP", "Serving graph API on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Info("HTTP", "Graph API stopped")
	return nil
}
