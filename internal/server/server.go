package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/joestump/bookmarks/internal/config"
	"github.com/joestump/bookmarks/internal/logger"
)

// Server wraps the HTTP server and its listener.
type Server struct {
	http     *http.Server
	logger   logger.Logger
	listener net.Listener
	done     chan struct{}
	serveErr error
}

// New builds the HTTP server around handler with transport timeouts.
func New(cfg *config.Config, log logger.Logger, handler http.Handler) *Server {
	s := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:   s,
		logger: log,
		done:   make(chan struct{}),
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned synchronously so a taken port fails startup.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.http.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.http.Addr)
	}
	s.listener = ln
	s.logger.Infof("HTTP server listening on %s", ln.Addr())

	go func() {
		defer close(s.done)
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr = err
			s.logger.Error("HTTP server stopped", logger.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	if err := s.http.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	if s.listener != nil {
		<-s.done
	}
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.http.Addr
	}
	return s.listener.Addr().String()
}

// Done is closed when the serve loop exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the serve loop, if any.
func (s *Server) Err() error {
	return s.serveErr
}

// Register ties the server to the fx application lifecycle. If the serve
// loop dies on its own the whole application is shut down.
func Register(lc fx.Lifecycle, sd fx.Shutdowner, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.Start(ctx); err != nil {
				return err
			}
			go func() {
				<-s.Done()
				if s.Err() != nil {
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: s.Stop,
	})
}
