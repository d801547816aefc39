// Package server exposes the rewrite operations as a JSON HTTP API for
// log-explorer frontends.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the rewrite API server.
type Config struct {
	// Addr is the listen address, e.g. ":8686".
	Addr string
	// DefaultLimit is applied when a request does not carry a limit.
	DefaultLimit int
	// TimeColumn is applied when a context request does not name one.
	TimeColumn string
	Logger     *slog.Logger
}

// Server serves the rewrite API.
type Server struct {
	addr         string
	defaultLimit int
	timeColumn   string
	logger       *slog.Logger
}

// New creates a rewrite API server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr:         cfg.Addr,
		defaultLimit: cfg.DefaultLimit,
		timeColumn:   cfg.TimeColumn,
		logger:       logger,
	}
}

// Router returns the HTTP handler. Exposed separately so tests can drive
// it without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/paginate", s.handlePaginate)
		r.Post("/context", s.handleContext)
		r.Post("/inspect", s.handleInspect)
	})

	return r
}

// Serve starts the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting rewrite API", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		BaseContext:       func(net.Listener) context.Context { return egctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		s.logger.Info("shutting down rewrite API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
