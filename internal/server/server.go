// Package server exposes a Converter over HTTP: one-shot renders, a
// websocket that renders a growing document after every chunk, and the
// stylesheet the fragments are written against.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	streammd "github.com/alnah/go-streammd"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// DefaultReadLimit caps request bodies and websocket messages when
// Config.ReadLimit is unset.
const DefaultReadLimit = 1 << 20

// Config configures a Server.
type Config struct {
	ReadLimit int64          // Max /render body and /stream message size in bytes
	Logger    zerolog.Logger // Request and connection logging

	// AllowedOrigins lists extra browser origins (e.g. "http://localhost:5173")
	// allowed to open /stream. Same-origin pages are always allowed.
	AllowedOrigins []string
}

// Server routes preview requests to a shared Converter.
type Server struct {
	conv      *streammd.Converter
	log       zerolog.Logger
	readLimit int64
	router    *mux.Router
	upgrader  websocket.Upgrader
}

// New creates a Server rendering through conv.
func New(conv *streammd.Converter, cfg Config) *Server {
	s := &Server{
		conv:      conv,
		log:       cfg.Logger,
		readLimit: cfg.ReadLimit,
		upgrader:  newUpgrader(cfg.AllowedOrigins),
	}
	if s.readLimit <= 0 {
		s.readLimit = DefaultReadLimit
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	r.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/style.css", s.handleStyle).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the routed handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe binds addr and serves until ctx is canceled, then shuts
// down gracefully. Open websocket connections are closed when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("preview server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	<-errCh
	return nil
}
