// Package app wires the tracker runtime and HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/soliyanakewani/Project-Management-System/internal/platform/telemetry/metrics"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/account"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/api"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/identity"
	trackersqlite "github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage/sqlite"
)

// startupProbeTimeout caps the storage reachability check at boot.
const startupProbeTimeout = 5 * time.Second

// Config defines the inputs for the tracker server.
type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
}

// Server hosts the tracker HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *trackersqlite.Store
}

// New creates a configured tracker server listening on config.Addr.
func New(config Config) (*Server, error) {
	addr := strings.TrimSpace(config.Addr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openTrackerStore(config.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	probeCtx, cancel := context.WithTimeout(context.Background(), startupProbeTimeout)
	defer cancel()
	if err := store.Ping(probeCtx); err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("probe tracker store: %w", err)
	}

	issuer, err := identity.NewIssuer(config.JWTSecret, identity.DefaultTokenTTL)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("configure token issuer: %w", err)
	}

	m, err := metrics.NewMetrics(otel.Meter(metrics.MeterName))
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create metric instruments: %w", err)
	}

	handler := api.NewHandler(api.Config{
		Projects: domain.NewProjectService(store),
		Tasks:    domain.NewTaskService(store, domain.NewSynchronizer(store, store, m)),
		Accounts: account.NewService(store, issuer),
		Issuer:   issuer,
		Metrics:  m,
	})

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store: store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a tracker server until context cancellation.
func Run(ctx context.Context, config Config) error {
	server, err := New(config)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("tracker server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases tracker server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close tracker store: %v", err)
		}
	}
}

func openTrackerStore(path string) (*trackersqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "tracker.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := trackersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tracker sqlite store: %w", err)
	}
	return store, nil
}
