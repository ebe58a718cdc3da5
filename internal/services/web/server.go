// Package web hosts the browser-facing blog service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/platform/timeouts"
	"github.com/louisbranch/inkwell/internal/services/web/app"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/modules"
	"github.com/louisbranch/inkwell/internal/services/web/platform/httpx"
	"github.com/louisbranch/inkwell/internal/services/web/platform/observability"
	"go.uber.org/zap"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Fetcher  feed.Fetcher
	Logger   *zap.Logger
	// Language forces every response into one locale when set.
	Language string
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := module.Dependencies{
		Fetcher: cfg.Fetcher,
		Logger:  logger,
	}
	if lang := strings.TrimSpace(cfg.Language); lang != "" {
		deps.ResolveLanguage = func(*http.Request) string { return lang }
	}
	h, err := app.Composer{}.Compose(app.ComposeInput{
		Dependencies: deps,
		Modules:      modules.Default(),
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(h,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen web http: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until context cancellation or
// server stop.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	s.logger.Info("web server listening", zap.String("addr", listener.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
