// Package server exposes the correction engine over a small JSON HTTP
// API, plus health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/redlinehq/redline/internal/engine"
	"github.com/redlinehq/redline/internal/observe"
	"github.com/redlinehq/redline/internal/session"
)

// shutdownTimeout bounds graceful shutdown after ctx cancellation.
const shutdownTimeout = 10 * time.Second

// Server wires the engine and session manager into an [http.Server].
type Server struct {
	engine   *engine.Engine
	sessions *session.Manager
	metrics  *observe.Metrics
	addr     string
}

// New returns a [Server] listening on addr once Run is called.
func New(addr string, eng *engine.Engine, sessions *session.Manager, metrics *observe.Metrics) *Server {
	return &Server{
		engine:   eng,
		sessions: sessions,
		metrics:  metrics,
		addr:     addr,
	}
}

// Handler builds the full route table, wrapped in the observability
// middleware. Exposed separately from Run for httptest-based tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/check", s.handleCheck)
	mux.HandleFunc("POST /v1/apply", s.handleApply)
	mux.HandleFunc("POST /v1/diff", s.handleDiff)

	mux.HandleFunc("POST /v1/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /v1/sessions/{id}", s.handleSessionCurrent)
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.handleSessionClose)
	mux.HandleFunc("POST /v1/sessions/{id}/push", s.handleSessionPush)
	mux.HandleFunc("POST /v1/sessions/{id}/undo", s.handleSessionUndo)
	mux.HandleFunc("POST /v1/sessions/{id}/redo", s.handleSessionRedo)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return observe.Middleware(s.metrics)(mux)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// The session janitor runs alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.sessions.Janitor(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
