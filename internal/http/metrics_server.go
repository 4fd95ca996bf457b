package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/iamRazzakk/storefront-api/internal/metrics"
)

const metricsPath = "/metrics"

// MetricsServer serves the storefront's Prometheus scrape endpoint on a port
// of its own, apart from the public API router. The API drains before this
// server stops, so the drain itself can be scraped.
type MetricsServer struct {
	server  *http.Server
	logger  *slog.Logger
	console zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewMetricsServer creates a MetricsServer bound to host:port. GET / answers
// with a short index naming the metric namespace and the scrape path.
func NewMetricsServer(
	host string,
	port int,
	namespace string,
	logger *slog.Logger,
	console zerolog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(scrapeLoggerMiddleware(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("metrics handler panic", slog.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))

	if metricsProvider != nil {
		router.GET(metricsPath, gin.WrapH(metricsProvider.Handler()))
	}
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s metrics are served at %s\n", namespace, metricsPath)
	})
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		logger:  logger,
		console: console,
	}
}

// scrapeLoggerMiddleware keeps periodic scrapes out of the info stream:
// successful requests log at debug, anything else at warn.
func scrapeLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "metrics request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is listening on, or the configured
// address before Start has bound it.
func (s *MetricsServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start binds the listener and serves until Shutdown. A port that cannot be
// bound is reported immediately.
func (s *MetricsServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	addr := listener.Addr().String()
	s.logger.Info("starting metrics server", slog.String("addr", addr))
	s.console.Info().Str("url", "http://"+addr+metricsPath).Msg("metrics endpoint is available")

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve metrics: %w", err)
	}
	return nil
}

// Shutdown stops the metrics server once in-flight scrapes finish or ctx expires.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
