// Package server runs the HTTP front of the bucketlist API and handles
// graceful shutdown on termination signals.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkarpov/go-bucketlist/internal/config"
	"github.com/mkarpov/go-bucketlist/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal before the listener is torn down.
const shutdownTimeout = 10 * time.Second

// Server wraps an [http.Server] with signal-driven lifecycle management.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer builds a Server listening on the configured address and serving
// the given handler. A non-zero request timeout is applied as the read and
// write deadline of every connection.
func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (*Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errors.New("no http address to listen on")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      handler,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		logger: logger,
	}, nil
}

// Run starts the listener and blocks until a termination signal arrives and
// all in-flight requests have been drained.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	idleConnectionsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Err(err).Msg("HTTP server shutdown failed")
		}

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.Addr).Msg("launching HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shut down gracefully")

	return nil
}
