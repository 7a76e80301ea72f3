package daemon

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"sparkd/internal/api"
)

// Server manages the HTTP server lifecycle on the daemon's unix socket.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	socketPath string
	logger     *zap.Logger
}

// NewServer creates an HTTP server bound to the daemon's unix socket.
func NewServer(cfg resolvedConfig, logger *zap.Logger, handler *api.Handler) (*Server, error) {
	socketPath := cfg.SocketPath

	// Clean a stale socket if it exists.
	if _, err := os.Stat(socketPath); err == nil {
		_ = os.Remove(socketPath)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen unix socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(handler.Router())

	return &Server{
		httpServer: &http.Server{Handler: corsHandler},
		listener:   listener,
		socketPath: socketPath,
		logger:     logger,
	}, nil
}

// Start serves until Stop is called. Blocks; run in a goroutine.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("socket", s.socketPath))
	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down and removes the socket file.
func (s *Server) Stop(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown error", zap.Error(err))
	}
	_ = os.Remove(s.socketPath)
}
