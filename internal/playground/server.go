// Package playground runs the interactive popup demo server. It serves a
// single-page harness, upgrades /ws connections, and drives one popup
// controller per connection.
package playground

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-go/popup/internal/config"
	"github.com/vango-go/popup/pkg/middleware"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// Server is the playground HTTP and WebSocket server.
type Server struct {
	cfg *config.Config
	log *slog.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*Session]struct{}

	httpServer *http.Server
}

// New creates a playground server for the given configuration.
func New(cfg *config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local dev tool
			},
		},
		sessions: make(map[*Session]struct{}),
	}
}

// Handler builds the playground router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Tracing(
		middleware.WithRequestFilter(func(req *http.Request) bool {
			return req.URL.Path != "/healthz"
		}),
	))
	r.Use(middleware.Metrics())

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.Handler())
	}
	return r
}

// Start runs the server until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("playground listening", "addr", s.cfg.Addr())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("playground server: %w", err)
		}
		return nil
	}
}

// Stop closes all sessions and shuts the HTTP server down gracefully.
func (s *Server) Stop() error {
	s.mu.Lock()
	for sess := range s.sessions {
		sess.conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down playground: %w", err)
	}
	return nil
}

// SessionCount reports the number of live WebSocket sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, demoPage)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.cfg, s.log)
	sess.onClose = s.release

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	middleware.RecordSessionStart()

	s.log.Debug("session started", "remote", conn.RemoteAddr())
	go sess.run()
}

// release drops a finished session from the registry.
func (s *Server) release(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	s.log.Debug("session ended")
}
