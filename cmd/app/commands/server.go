package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/iamRazzakk/storefront-api/internal/app"
	"github.com/iamRazzakk/storefront-api/internal/config"
)

// RunServer starts the HTTP server with graceful shutdown support.
// Loads and validates configuration, connects to MongoDB through the DI
// container and starts the API and metrics servers. Blocks until receiving
// SIGINT/SIGTERM or encountering a fatal error. On shutdown signal, in-flight
// requests are drained for up to ShutdownTimeout before the database client
// is disconnected.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	console := container.Console()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("env", cfg.AppEnv),
	)

	// Ensure cleanup on exit: limiter, metrics, database and log file
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	var shutdownErrors []error

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, starting graceful shutdown")
		console.Warn().Msg("shutdown signal received, starting graceful shutdown")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		console.Error().Err(err).Msg("server error, initiating shutdown")
		shutdownErrors = append(shutdownErrors, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	} else {
		console.Info().Msg("HTTP server closed")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return errors.Join(shutdownErrors...)
	}

	logger.Info("graceful shutdown completed")
	console.Info().Msg("graceful shutdown completed")
	return nil
}
