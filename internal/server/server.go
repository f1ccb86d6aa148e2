package server

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/muliwe/package-sorter/internal/config"
	"github.com/muliwe/package-sorter/internal/logger"
	"github.com/muliwe/package-sorter/internal/metrics"
)

// Server represents the HTTP server
type Server struct {
	cfg        config.ServerConfig
	httpServer *http.Server
	handler    *Handler
	log        *slog.Logger
}

// New creates a new server instance. m may be nil to disable /metrics.
func New(cfg config.ServerConfig, h *Handler, m *metrics.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      Routes(h, m, cfg.EnableDebug),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	if cfg.TLSEnabled() {
		httpServer.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"},
		}
	}

	return &Server{
		cfg:        cfg,
		httpServer: httpServer,
		handler:    h,
		log:        log,
	}
}

// Routes builds the API router
func Routes(h *Handler, m *metrics.Metrics, enableDebug bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sort", h.HandleSort)
	mux.HandleFunc("GET /sort", h.HandleSortQuery)
	mux.HandleFunc("GET /health", h.HandleHealth)
	if enableDebug {
		mux.HandleFunc("GET /debug", h.HandleDebug)
	}
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	return instrument(m, mux)
}

// Start runs the server until SIGINT or SIGTERM
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "failed to create listener")
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	protocol := "HTTP"
	if s.cfg.TLSEnabled() {
		protocol = "HTTPS"
	}
	s.log.Info("package sorter starting",
		"addr", ln.Addr().String(),
		"protocol", protocol,
		"debug", s.cfg.EnableDebug,
		"version", Version,
	)

	errCh := make(chan error, 1)
	go func() {
		if s.cfg.TLSEnabled() {
			errCh <- s.httpServer.ServeTLS(ln, s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			errCh <- s.httpServer.Serve(ln)
		}
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	if err := s.Close(); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// Close gracefully shuts down the server and closes the decision log
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}

	if s.handler != nil && s.handler.decisions != nil {
		if err := s.handler.decisions.Close(); err != nil {
			return errors.Wrap(err, "closing decision log")
		}
	}
	return nil
}
