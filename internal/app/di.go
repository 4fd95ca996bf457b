// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	authHTTP "github.com/iamRazzakk/storefront-api/internal/auth/http"
	authService "github.com/iamRazzakk/storefront-api/internal/auth/service"
	authUseCase "github.com/iamRazzakk/storefront-api/internal/auth/usecase"
	"github.com/iamRazzakk/storefront-api/internal/config"
	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/http"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/logging"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	productHTTP "github.com/iamRazzakk/storefront-api/internal/product/http"
	productUseCase "github.com/iamRazzakk/storefront-api/internal/product/usecase"
	userHTTP "github.com/iamRazzakk/storefront-api/internal/user/http"
	userRepository "github.com/iamRazzakk/storefront-api/internal/user/repository"
	userUseCase "github.com/iamRazzakk/storefront-api/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	console         zerolog.Logger
	logOutput       io.WriteCloser
	mongoClient     *mongo.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	errorNormalizer *httputil.ErrorNormalizer

	// Products
	productRepository productUseCase.ProductRepository
	productUseCase    productUseCase.ProductUseCase
	productHandler    *productHTTP.ProductHandler

	// Users
	userRepository *userRepository.MongoUserRepository
	userUseCase    userUseCase.UserUseCase
	userHandler    *userHTTP.UserHandler

	// Auth
	passwordService  authService.PasswordService
	tokenService     authService.TokenService
	authUseCase      authUseCase.AuthUseCase
	authHandler      *authHTTP.AuthHandler
	loginRateLimiter *authHTTP.LoginRateLimiter

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	consoleInit           sync.Once
	mongoClientInit       sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	errorNormalizerInit   sync.Once
	productRepositoryInit sync.Once
	productUseCaseInit    sync.Once
	productHandlerInit    sync.Once
	userRepositoryInit    sync.Once
	userUseCaseInit       sync.Once
	userHandlerInit       sync.Once
	passwordServiceInit   sync.Once
	tokenServiceInit      sync.Once
	authUseCaseInit       sync.Once
	authHandlerInit       sync.Once
	loginRateLimiterInit  sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the structured JSON logger.
// It writes to stdout, or to a rotating file when LOG_FILE is set.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Console returns the human-readable console stream.
func (c *Container) Console() zerolog.Logger {
	c.consoleInit.Do(func() {
		c.console = logging.NewConsole(c.config.LogLevel, c.config.AppEnv, os.Stderr)
	})
	return c.console
}

// MongoClient returns the process-wide MongoDB client.
// It connects and verifies the connection on first access.
func (c *Container) MongoClient() (*mongo.Client, error) {
	var err error
	c.mongoClientInit.Do(func() {
		c.mongoClient, err = c.initMongoClient()
		if err != nil {
			c.initErrors["mongoClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mongoClient"]; exists {
		return nil, storedErr
	}
	return c.mongoClient, nil
}

// Database returns the configured MongoDB database.
func (c *Container) Database() (*mongo.Database, error) {
	client, err := c.MongoClient()
	if err != nil {
		return nil, err
	}
	return client.Database(c.config.MongoDatabase), nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op
// recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// ErrorNormalizer returns the failure response normalizer.
func (c *Container) ErrorNormalizer() *httputil.ErrorNormalizer {
	c.errorNormalizerInit.Do(func() {
		c.errorNormalizer = httputil.NewErrorNormalizer(c.config.AppEnv, c.Logger(), c.Console())
	})
	return c.errorNormalizer
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources: servers first,
// then the login limiter, metrics, the database client and the log file.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.loginRateLimiter != nil {
		c.loginRateLimiter.Stop()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.mongoClient != nil {
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database disconnect: %w", err))
		} else {
			c.Logger().Info("database connection closed")
			c.Console().Info().Msg("database connection closed")
		}
	}

	if c.logOutput != nil {
		if err := c.logOutput.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("log output close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates the structured logger and keeps its output for closing.
func (c *Container) initLogger() *slog.Logger {
	c.logOutput = logging.Output(logging.FileOptions{
		Path:       c.config.LogFile,
		MaxSizeMB:  c.config.LogFileMaxSizeMB,
		MaxBackups: c.config.LogFileMaxBackups,
		MaxAgeDays: c.config.LogFileMaxAgeDays,
		Compress:   true,
	})
	return logging.NewStructured(c.config.LogLevel, c.logOutput)
}

// initMongoClient connects to MongoDB and logs the connection event.
func (c *Container) initMongoClient() (*mongo.Client, error) {
	client, err := database.Connect(context.Background(), database.Config{
		URI:            c.config.MongoURI,
		Database:       c.config.MongoDatabase,
		MaxPoolSize:    c.config.MongoMaxPoolSize,
		ConnectTimeout: c.config.MongoConnectTimeout,
	})
	if err != nil {
		c.Logger().Error("database connection failed", slog.Any("error", err))
		c.Console().Error().Err(err).Msg("database connection failed")
		return nil, err
	}

	c.Logger().Info("database connected", slog.String("database", c.config.MongoDatabase))
	c.Console().Info().Str("database", c.config.MongoDatabase).Msg("MongoDB connected successfully")
	return client, nil
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the API server and sets up its router.
func (c *Container) initHTTPServer() (*http.Server, error) {
	client, err := c.MongoClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get database client for http server: %w", err)
	}

	productHandler, err := c.ProductHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get product handler for http server: %w", err)
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	authHandler, err := c.AuthHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(
		client,
		c.config.ServerHost,
		c.config.ServerPort,
		c.Logger(),
		c.Console(),
	)

	server.SetupRouter(
		c.config,
		c.ErrorNormalizer(),
		productHandler,
		userHandler,
		authHandler,
		c.LoginRateLimiter(),
		metricsProvider,
	)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.config.MetricsNamespace,
		c.Logger(),
		c.Console(),
		provider,
	), nil
}
