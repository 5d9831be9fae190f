package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"mercator-hq/llmsim/pkg/config"
	"mercator-hq/llmsim/pkg/server/handlers"
	"mercator-hq/llmsim/pkg/server/middleware"
	"mercator-hq/llmsim/pkg/sim"
	"mercator-hq/llmsim/pkg/telemetry/metrics"
)

// Server is the HTTP server for the simulator.
type Server struct {
	manager   *config.Manager
	simulator *sim.Simulator
	collector *metrics.Collector

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new simulator server. The metrics collector may be
// nil when metrics are disabled.
func NewServer(manager *config.Manager, simulator *sim.Simulator, collector *metrics.Collector) *Server {
	return &Server{
		manager:      manager,
		simulator:    simulator,
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	cfg := s.manager.Current().Server
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting simulator server", "address", addr)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server, letting in-flight simulations
// finish within the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		timeout := s.manager.Current().Server.ShutdownTimeout
		slog.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("simulator server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	chatHandler := handlers.NewChatHandler(s.simulator)
	responsesHandler := handlers.NewResponsesHandler(s.simulator)
	modelsHandler := handlers.NewModelsHandler(s.manager)
	modelHandler := handlers.NewModelHandler(s.manager)
	healthHandler := handlers.NewHealthHandler()
	statsHandler := handlers.NewStatsHandler(s.simulator.Stats())

	mux.Handle("/health", healthHandler)

	// The OpenAI SDK and common gateways address the API under different
	// base paths; all aliases share the same handlers.
	mux.Handle("/v1/chat/completions", chatHandler)
	mux.Handle("/openai/v1/chat/completions", chatHandler)

	mux.Handle("/v1/responses", responsesHandler)
	mux.Handle("/openai/v1/responses", responsesHandler)
	mux.Handle("/openresponses/v1/responses", responsesHandler)

	mux.Handle("GET /v1/models", modelsHandler)
	mux.Handle("GET /v1/models/{id}", modelHandler)

	mux.Handle("/llmsim/stats", statsHandler)

	telemetry := s.manager.Current().Telemetry
	if telemetry.Metrics.Enabled && s.collector != nil {
		mux.Handle(telemetry.Metrics.Path, s.collector.Handler())
	}

	// Middleware chain, recovery outermost. The request ID runs outside
	// the access logger so the completion log can correlate on it.
	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler. Useful for tests that drive
// the server without binding a socket.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
