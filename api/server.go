// Package api exposes the generation pipeline over a local HTTP facade,
// enabling programmatic access from editors and automation pipelines.
//
// Endpoints:
//
//	POST /api/generate         →  blocking generation (JSON in/out)
//	POST /api/generate/stream  →  streaming generation (SSE)
//	POST /api/generate/cancel  →  abort the in-flight generation
//	POST /api/probe            →  connectivity probe against the backend
//	GET  /api/chats            →  list chat threads
//	POST /api/chats            →  create chat thread
//	GET  /api/chats/{id}       →  fetch one chat thread
//	DELETE /api/chats/{id}     →  delete chat thread
//	GET  /api/history          →  recently generated posts
//	GET  /health               →  liveness probe
//	GET  /ready                →  readiness probe
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - health.go: Health check endpoints (/health, /ready)
//   - generate.go: Generation endpoints (blocking, SSE, cancel, probe)
//   - chats.go: Chat thread and history endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/draftforge/draftforge/internal/generator"
	"github.com/draftforge/draftforge/internal/log"
	"github.com/draftforge/draftforge/internal/session"
	"github.com/draftforge/draftforge/internal/webhook"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:3400"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response. It
	// must cover a full blocking generation call.
	WriteTimeout = 150 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP facade over the generation pipeline.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	health   *HealthHandler
	generate *GenerateHandler
	chats    *ChatHandler
}

// NewServer creates a server with all routes registered. prober may be
// nil when no backend endpoint is configured.
func NewServer(store *session.Store, gen *generator.Generator, prober *webhook.Client, logger log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:      mux,
		logger:   logger.With("component", "api"),
		health:   NewHealthHandler(store),
		generate: NewGenerateHandler(gen, prober),
		chats:    NewChatHandler(store),
	}

	s.health.RegisterRoutes(mux)
	s.generate.RegisterRoutes(mux)
	s.chats.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware(s.logger), loggingMiddleware(s.logger))
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
