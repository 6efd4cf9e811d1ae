package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/okuznetsov/battleship-go/internal/middleware"
)

// ServerConfig holds configuration for the websocket server
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns sensible defaults for server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":3000",
		ReadTimeout:     15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server exposes the websocket endpoint and a health probe, with graceful
// shutdown support.
type Server struct {
	server   *http.Server
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
	config   ServerConfig
}

// NewServer creates a new websocket server routing connections into the hub.
func NewServer(hub *Hub, config ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game client is served from arbitrary origins during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		config: config,
	}

	router := mux.NewRouter()
	router.Use(middleware.Logging(logger), middleware.Recovery(logger))
	router.HandleFunc("/ws", s.handleUpgrade)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:        config.Addr,
		Handler:     router,
		ReadTimeout: 0, // websocket connections are long-lived
	}
	return s
}

// Start begins listening for connections
func (s *Server) Start() error {
	s.logger.Info("starting websocket server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down websocket server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.logger.Info("websocket server stopped")
	return nil
}

// Addr returns the server's listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler exposes the router, mainly for end-to-end tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := newClient(s.hub, conn, s.logger)

	// The hub may already be shut down; never strand the upgrade goroutine
	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
