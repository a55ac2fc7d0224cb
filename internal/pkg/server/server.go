package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/logger"
)

// GracefulServer wraps the Echo server used in serve mode with signal
// handling and graceful shutdown.
type GracefulServer struct {
	echo            *echo.Echo
	port            int
	shutdownTimeout time.Duration
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, port int, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &GracefulServer{
		echo:            e,
		port:            port,
		shutdownTimeout: shutdownTimeout,
	}
}

// Start runs the server until an interrupt or TERM signal arrives, then
// shuts down gracefully.
func (s *GracefulServer) Start() error {
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		logger.Info("starting HTTP server", logrus.Fields{"address": addr})

		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Get().WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	logger.Info("received shutdown signal", logrus.Fields{"signal": sig.String()})

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *GracefulServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	logger.Info("server shutdown completed", nil)
	return nil
}
