package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpAdapter "github.com/edulab/stepwise/internal/adapters/http"
	"github.com/edulab/stepwise/internal/config"
	"github.com/edulab/stepwise/internal/logging"
)

// ServeOptions configures the 'serve' command.
type ServeOptions struct {
	ConfigPath string
	Listen     string // overrides the config file when non-empty
	Debug      bool
}

// RunServe starts the HTTP API and blocks until the context is cancelled
// or the listener fails.
func RunServe(ctx context.Context, opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	level := parseLevel(cfg.LogLevel)
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	app := buildApp(cfg, logger)
	defer app.Close()

	handler := httpAdapter.NewHandler(app.Sessions,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithRegistry(app.Engine.Registry()),
		httpAdapter.WithMetricsGatherer(app.Registry),
	)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "store", cfg.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Shutting down")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
		logger.Info("Server stopped")
		return nil
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
