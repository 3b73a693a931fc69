package api

import (
	"context"
	"net/http"
	"time"

	"github.com/derob357/sisters-promise/internal/config"
)

// Server is the HTTP front of the gateway.
type Server struct {
	config  *config.Config
	handler http.Handler
	server  *http.Server
}

// NewServer wires handlers, middleware and per-route rate limiters into
// a ready-to-serve router.
func NewServer(cfg *config.Config, h *Handlers, limiters Limiters) *Server {
	return &Server{
		config:  cfg,
		handler: SetupRoutes(h, cfg, limiters),
	}
}

// ListenAndServe starts the HTTP server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}
