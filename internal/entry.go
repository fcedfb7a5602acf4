// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/raido/internal/api"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/notestore"
	"github.com/starford/raido/internal/xcallback"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. Stderr, not stdout: the stdio
	// transport owns stdout for protocol frames.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("transport", cfg.Server.Transport),
		slog.String("open_command", cfg.Agenda.OpenCommand),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Select the x-callback dispatcher.
	dispatcher := app.dispatcher
	if dispatcher == nil {
		if cfg.Agenda.Enabled() {
			dispatcher = xcallback.NewExec(cfg.Agenda.OpenCommand, logger)
		} else {
			logger.Warn("Agenda dispatch disabled, URLs will not leave the process")
			dispatcher = xcallback.Noop{}
		}
	}

	store := notestore.New()
	srv := mcpserver.New(store, dispatcher)

	switch cfg.Server.Transport {
	case TransportHTTP:
		return runHTTP(ctx, cfg, srv, logger)
	default:
		return runStdio(ctx, srv, logger)
	}
}

// runStdio serves a single MCP session over stdin/stdout until the stream
// closes or a shutdown signal arrives.
func runStdio(ctx context.Context, srv *mcpserver.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Serving MCP over stdio")
	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}

	logger.Info("Server stopped successfully")
	return nil
}

// runHTTP serves the streamable-HTTP transport behind a chi router with
// health endpoints and optional Bearer auth.
func runHTTP(ctx context.Context, cfg *Config, srv *mcpserver.Server, logger *slog.Logger) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// MCP endpoint, behind auth when enabled.
	r.Mount("/mcp", api.NewRouter(srv.HTTPHandler(), cfg.Auth.AuthEnabled(), cfg.Auth.Token))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
