// Package http provides the HTTP server, its middleware chain and the
// operational endpoints.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	authHTTP "github.com/iamRazzakk/storefront-api/internal/auth/http"
	"github.com/iamRazzakk/storefront-api/internal/config"
	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	productHTTP "github.com/iamRazzakk/storefront-api/internal/product/http"
	userHTTP "github.com/iamRazzakk/storefront-api/internal/user/http"
)

const welcomeBanner = `<div style="color: red; font-size: 20px; font-weight: bold; text-align: center; ` +
	`background-color: #f0f0f0; padding: 20px; border-radius: 10px; margin: 20px; border: 2px solid red; ` +
	`box-shadow: 0 0 10px red inset;"> Welcome to Storefront API version 1.0.0 </div>`

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	client  *mongo.Client
	server  *http.Server
	router  *gin.Engine
	logger  *slog.Logger
	console zerolog.Logger
}

// NewServer creates a new HTTP server. client is used by the readiness
// endpoint and may be nil, in which case the server reports not ready.
func NewServer(
	client *mongo.Client,
	host string,
	port int,
	logger *slog.Logger,
	console zerolog.Logger,
) *Server {
	return &Server{
		client:  client,
		logger:  logger,
		console: console,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the middleware chain and registers every route.
// loginRateLimiter and metricsProvider are optional.
func (s *Server) SetupRouter(
	cfg *config.Config,
	normalizer *httputil.ErrorNormalizer,
	productHandler *productHTTP.ProductHandler,
	userHandler *userHTTP.UserHandler,
	authHandler *authHTTP.AuthHandler,
	loginRateLimiter *authHTTP.LoginRateLimiter,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger, s.console))
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	router.Use(createCORSMiddleware(cfg.CORSAllowOrigins, s.logger))
	router.Use(httputil.ErrorRenderer(normalizer))
	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(cfg.RateLimitWindow, cfg.RateLimitMaxRequests, s.logger))
	}
	router.Use(RecoveryMiddleware())

	router.NoRoute(NotFoundHandler)

	router.GET("/", s.rootHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")
	productHandler.RegisterRoutes(v1)
	userHandler.RegisterRoutes(v1)

	var loginLimit gin.HandlerFunc
	if loginRateLimiter != nil {
		loginLimit = loginRateLimiter.Middleware()
	}
	authHandler.RegisterRoutes(v1, loginLimit)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))
	s.console.Info().Str("addr", s.server.Addr).Msg("server is running")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) rootHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomeBanner))
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := database.Ping(ctx, s.client); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
