// Command dashboard-api serves the WtE dashboard HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/config"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/internal/observability"
	"github.com/upb/wte-dashboard/backend/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger, err := initLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.New(ctx)
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return err
	}

	// A policy that disagrees with the route table is a build defect
	if err := access.Validate(access.DefaultPolicy, access.DefaultRoutes); err != nil {
		logger.Error("access tables are inconsistent", zap.Error(err))
		return fmt.Errorf("access tables are inconsistent: %w", err)
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", zap.Error(err))
		return err
	}

	if err := deps.Audit.Start(); err != nil {
		_ = deps.Close(context.Background())
		return fmt.Errorf("failed to start audit service: %w", err)
	}

	if err := deps.Maintenance.Start(); err != nil {
		_ = deps.Close(context.Background())
		return fmt.Errorf("failed to start maintenance job: %w", err)
	}

	if cfg.Telemetry.Enabled {
		if err := deps.Monitor.Start(); err != nil {
			_ = deps.Close(context.Background())
			return fmt.Errorf("failed to start telemetry monitor: %w", err)
		}
	} else {
		logger.Info("telemetry monitor disabled")
	}

	srv := newServer(cfg.Server, routes.SetupRoutes(deps))

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("dashboard API listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			_ = deps.Close(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := deps.Close(shutdownCtx); err != nil {
		logger.Error("failed to release dependencies", zap.Error(err))
		return err
	}

	logger.Info("dashboard API stopped")
	return nil
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func initLogger() (*zap.Logger, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "json"
	}
	return observability.NewLogger(level, format)
}

func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}
