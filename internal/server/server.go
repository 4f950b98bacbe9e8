// internal/server/server.go
package server

import (
	"context"
	"errors"
	"net/http"

	"minus-backend/internal/common/config"
	"minus-backend/internal/common/logger"
)

// Server wraps http.Server with config-driven timeouts and graceful shutdown.
type Server struct {
	httpServer *http.Server
	log        logger.Logger
}

func New(cfg config.ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		log: log,
	}
}

// Start blocks serving requests until Shutdown or a listener failure.
func (s *Server) Start() error {
	s.log.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
