// Package server exposes the console's probes and metrics over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/autopeer-io/fleetconsole/internal/pkg/metrics"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/options"
)

// Checker reports an error while a component is not ready.
type Checker func(r *http.Request) error

type Server struct {
	server  *http.Server
	options *options.HttpOptions

	mu     sync.RWMutex
	checks map[string]Checker
}

func NewServer(opts *options.HttpOptions) *Server {
	s := &Server{options: opts, checks: map[string]Checker{}}

	mux := http.NewServeMux()

	// Basic Liveness Probe
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/readyz", s.readyz)
	mux.Handle("/metrics", metrics.Handler())

	s.server = &http.Server{
		Addr:    opts.Addr,
		Handler: mux,
	}
	return s
}

// AddReadyzCheck registers a named readiness check.
func (s *Server) AddReadyzCheck(name string, check Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, check := range s.checks {
		if err := check(r); err != nil {
			log.Debug("Readiness check failed", "check", name, "err", err)
			http.Error(w, fmt.Sprintf("%s: %v", name, err), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen(s.options.Network, s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	log.Info("Starting HTTP Server", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
