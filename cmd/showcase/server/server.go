package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"code-showcase/internal/adapter/gin/handler"
	ginrouter "code-showcase/internal/adapter/gin/router"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server wraps the sample data HTTP server and its shutdown policy
type Server struct {
	HTTP            *http.Server
	Logger          *zap.Logger
	ShutdownTimeout time.Duration
}

// New creates and configures the sample data server listening on addr
func New(dataHandler *handler.DataHandler, serviceName, addr string, shutdownTimeout time.Duration, l *zap.Logger) *Server {
	router := ginrouter.SetupRouter(dataHandler, serviceName, l)

	return &Server{
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Logger:          l,
		ShutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("sample data server running", zap.String("address", lis.Addr().String()))
		if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		s.Logger.Info("starting graceful shutdown", zap.Duration("timeout", s.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()

		if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		s.Logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
