// Package startup wires configuration, storage and the router into a
// running HTTP server. It is shared by cmd/cloudcafe and the integration
// tests, which bind to port 0 and drive the server over real HTTP.
package startup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage/postgres"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage/sqlite"
)

// Server is an HTTP server bound to an already-open listener.
type Server struct {
	srv      *http.Server
	listener net.Listener
}

// Listen binds the configured address. With port 0 the OS chooses a port;
// read it back from Server.Port.
func Listen(app config.ApplicationSettings) (net.Listener, error) {
	l, err := net.Listen("tcp", app.Address())
	if err != nil {
		return nil, fmt.Errorf("startup.Listen: %w", err)
	}
	return l, nil
}

// New builds a Server. Zero timeouts in app mean no timeout.
func New(listener net.Listener, handler http.Handler, app config.ApplicationSettings) *Server {
	return &Server{
		listener: listener,
		srv: &http.Server{
			Handler:      handler,
			ReadTimeout:  app.ReadTimeout,
			WriteTimeout: app.WriteTimeout,
			IdleTimeout:  app.IdleTimeout,
			ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		},
	}
}

// Addr is the address the listener is bound to.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Port is the bound TCP port, useful when the configured port was 0.
func (s *Server) Port() int {
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Serve blocks until the server stops. A stop caused by Shutdown returns nil.
func (s *Server) Serve() error {
	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("startup.Serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// OpenStorage connects the backend selected by cfg.Driver.
func OpenStorage(ctx context.Context, cfg config.DatabaseSettings) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("startup.OpenStorage: unknown driver %q", cfg.Driver)
	}
}
