package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srediag/acc-telemetry/internal/logger"
)

// Server serves /metrics, /live and /ready.
type Server struct {
	srv *http.Server
	ln  net.Listener
	log *logger.Logger
}

// NewServer builds the HTTP server. health may be nil.
func NewServer(addr string, c *Collector, health healthcheck.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New("metrics", nil)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{
		Registry: c.Registry(),
	}))
	if health != nil {
		mux.HandleFunc("/live", health.LiveEndpoint)
		mux.HandleFunc("/ready", health.ReadyEndpoint)
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start listens and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server stopped: %v", err)
		}
	}()
	s.log.Infof("serving metrics on %s", ln.Addr())
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.srv.Addr
	}
	return s.ln.Addr().String()
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
