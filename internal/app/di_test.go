package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iamRazzakk/storefront-api/internal/config"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	"github.com/iamRazzakk/storefront-api/internal/testutil"
)

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := &config.Config{
		LogLevel:            "info",
		AppEnv:              config.EnvTest,
		MongoURI:            "mongodb://localhost:27017",
		MongoDatabase:       "storefront",
		MongoMaxPoolSize:    10,
		MongoConnectTimeout: time.Second,
		ServerHost:          "localhost",
		ServerPort:          3000,
	}

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerFile verifies that LOG_FILE sends the structured log to a file.
func TestContainerLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	container := NewContainer(&config.Config{
		LogLevel:         "info",
		LogFile:          path,
		LogFileMaxSizeMB: 1,
	})

	container.Logger().Info("written to file")

	if err := container.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error during shutdown: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(content) == 0 {
		t.Error("expected log file to contain the record")
	}
}

// TestContainerMongoClientError verifies that connection errors are returned and remembered.
func TestContainerMongoClientError(t *testing.T) {
	container := NewContainer(&config.Config{
		LogLevel:            "error",
		MongoURI:            "mongodb://127.0.0.1:1",
		MongoDatabase:       "storefront",
		MongoMaxPoolSize:    1,
		MongoConnectTimeout: 200 * time.Millisecond,
	})

	if _, err := container.MongoClient(); err == nil {
		t.Error("expected error when connecting to an unreachable server")
	}

	// Attempting again should return the stored error
	if _, err := container.MongoClient(); err == nil {
		t.Error("expected error on second call to MongoClient()")
	}

	if _, err := container.HTTPServer(); err == nil {
		t.Error("expected http server initialization to fail without a database")
	}
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	if container.logger != nil {
		t.Error("expected logger to be nil before first access")
	}

	if container.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}

	if container.logger == nil {
		t.Error("expected logger to be initialized after access")
	}
}

// TestContainerMetricsDisabled verifies the metrics components when metrics are off.
func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info", MetricsEnabled: false})

	provider, err := container.MetricsProvider()
	if err != nil || provider != nil {
		t.Errorf("expected nil provider without error, got %v, %v", provider, err)
	}

	businessMetrics, err := container.BusinessMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := businessMetrics.(*metrics.NoOpBusinessMetrics); !ok {
		t.Errorf("expected no-op business metrics, got %T", businessMetrics)
	}

	server, err := container.MetricsServer()
	if err != nil || server != nil {
		t.Errorf("expected nil metrics server without error, got %v, %v", server, err)
	}
}

// TestContainerMetricsEnabled verifies the metrics components when metrics are on.
func TestContainerMetricsEnabled(t *testing.T) {
	container := NewContainer(&config.Config{
		LogLevel:         "info",
		ServerHost:       "localhost",
		MetricsEnabled:   true,
		MetricsNamespace: "di_test",
		MetricsPort:      8081,
	})
	defer func() { _ = container.Shutdown(context.Background()) }()

	provider, err := container.MetricsProvider()
	if err != nil || provider == nil {
		t.Fatalf("expected provider, got %v, %v", provider, err)
	}

	if _, err := container.BusinessMetrics(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	server, err := container.MetricsServer()
	if err != nil || server == nil {
		t.Errorf("expected metrics server, got %v, %v", server, err)
	}
}

// TestContainerLoginRateLimiter verifies the limiter follows configuration and is stopped on shutdown.
func TestContainerLoginRateLimiter(t *testing.T) {
	disabled := NewContainer(&config.Config{LogLevel: "info"})
	if disabled.LoginRateLimiter() != nil {
		t.Error("expected nil limiter when disabled")
	}

	enabled := NewContainer(&config.Config{
		LogLevel:                     "info",
		RateLimitLoginEnabled:        true,
		RateLimitLoginRequestsPerSec: 1,
		RateLimitLoginBurst:          5,
	})
	limiter := enabled.LoginRateLimiter()
	if limiter == nil {
		t.Fatal("expected limiter when enabled")
	}
	if limiter != enabled.LoginRateLimiter() {
		t.Error("expected same limiter instance on multiple calls")
	}

	if err := enabled.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}

// TestContainerServices verifies that the auth services are singletons.
func TestContainerServices(t *testing.T) {
	container := NewContainer(&config.Config{
		JWTSecret:     "secret",
		JWTIssuer:     "storefront-api",
		JWTExpiration: time.Hour,
	})

	if container.PasswordService() == nil || container.PasswordService() != container.PasswordService() {
		t.Error("expected a single password service instance")
	}
	if container.TokenService() == nil || container.TokenService() != container.TokenService() {
		t.Error("expected a single token service instance")
	}
}

// TestContainerHTTPServer builds the whole graph against a real database.
func TestContainerHTTPServer(t *testing.T) {
	uri := testutil.GetMongoTestURI()
	if uri == "" {
		t.Skipf("%s not set, skipping MongoDB integration test", testutil.MongoTestURIEnv)
	}

	container := NewContainer(&config.Config{
		AppEnv:                       config.EnvTest,
		LogLevel:                     "error",
		ServerHost:                   "localhost",
		ServerPort:                   3000,
		MongoURI:                     uri,
		MongoDatabase:                testutil.TestDatabaseName(),
		MongoMaxPoolSize:             5,
		MongoConnectTimeout:          5 * time.Second,
		RateLimitEnabled:             true,
		RateLimitWindow:              time.Minute,
		RateLimitMaxRequests:         100,
		RateLimitLoginEnabled:        true,
		RateLimitLoginRequestsPerSec: 1,
		RateLimitLoginBurst:          5,
		JWTSecret:                    "secret",
		JWTIssuer:                    "storefront-api",
		JWTExpiration:                time.Hour,
		MetricsEnabled:               true,
		MetricsNamespace:             "di_http_test",
		MetricsPort:                  8081,
	})
	defer func() {
		if err := container.Shutdown(context.Background()); err != nil {
			t.Errorf("unexpected error during shutdown: %v", err)
		}
	}()

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server.GetHandler() == nil {
		t.Error("expected router to be configured")
	}
}

// TestContainerShutdown verifies that the shutdown method can be called safely.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	// Shutdown should not fail even if no components are initialized
	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}
