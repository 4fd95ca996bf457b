// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Application environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// DefaultJWTSecret is the JWT_SECRET fallback. Validate rejects it in production.
const DefaultJWTSecret = "secret"

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds how long in-flight requests are drained on shutdown.
	ShutdownTimeout time.Duration

	// AppEnv is the application environment ("development", "production" or "test").
	AppEnv string

	// MongoURI is the MongoDB connection string. Required.
	MongoURI string
	// MongoDatabase is the database holding the products and users collections.
	MongoDatabase string
	// MongoMaxPoolSize is the maximum number of pooled connections.
	MongoMaxPoolSize uint64
	// MongoConnectTimeout bounds the initial connection and ping.
	MongoConnectTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string
	// LogFile is the path of the structured log file. Empty means stdout.
	LogFile string
	// LogFileMaxSizeMB is the size at which the log file is rotated.
	LogFileMaxSizeMB int
	// LogFileMaxBackups is the number of rotated log files kept.
	LogFileMaxBackups int
	// LogFileMaxAgeDays is the number of days rotated log files are kept.
	LogFileMaxAgeDays int

	// RateLimitEnabled indicates whether the global per-IP rate limit is enabled.
	RateLimitEnabled bool
	// RateLimitWindow is the fixed window of the global rate limit.
	RateLimitWindow time.Duration
	// RateLimitMaxRequests is the number of requests allowed per window and client IP.
	RateLimitMaxRequests int64

	// RateLimitLoginEnabled indicates whether rate limiting for the login endpoint is enabled.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the number of requests allowed per second for the login endpoint.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size for the login endpoint rate limiting.
	RateLimitLoginBurst int

	// CORSAllowOrigins is a comma-separated list of allowed origins. Empty allows any origin.
	CORSAllowOrigins string

	// JWTSecret is the HMAC key used to sign login tokens.
	JWTSecret string
	// JWTIssuer is the issuer claim of login tokens.
	JWTIssuer string
	// JWTExpiration is the lifetime of login tokens.
	JWTExpiration time.Duration

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 3000),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 15, time.Second),
		AppEnv:          strings.ToLower(env.GetString("APP_ENV", EnvDevelopment)),

		// MongoDB
		MongoURI:            env.GetString("MONGODB_URI", ""),
		MongoDatabase:       env.GetString("MONGODB_DATABASE", "storefront"),
		MongoMaxPoolSize:    uint64(env.GetInt("MONGODB_MAX_POOL_SIZE", 100)),
		MongoConnectTimeout: env.GetDuration("MONGODB_CONNECT_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel:          strings.ToLower(env.GetString("LOG_LEVEL", "info")),
		LogFile:           env.GetString("LOG_FILE", ""),
		LogFileMaxSizeMB:  env.GetInt("LOG_FILE_MAX_SIZE_MB", 100),
		LogFileMaxBackups: env.GetInt("LOG_FILE_MAX_BACKUPS", 14),
		LogFileMaxAgeDays: env.GetInt("LOG_FILE_MAX_AGE_DAYS", 14),

		// Rate Limiting (all routes, fixed window per client IP)
		RateLimitEnabled:     env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitWindow:      env.GetDuration("RATE_LIMIT_WINDOW_SECONDS", 60, time.Second),
		RateLimitMaxRequests: int64(env.GetInt("RATE_LIMIT_MAX_REQUESTS", 100)),

		// Rate Limiting for Login Endpoint (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 1.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 5),

		// CORS
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// JWT
		JWTSecret:     env.GetString("JWT_SECRET", DefaultJWTSecret),
		JWTIssuer:     env.GetString("JWT_ISSUER", "storefront-api"),
		JWTExpiration: env.GetDuration("JWT_EXPIRATION_SECONDS", 604800, time.Second),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "storefront"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration. A missing MONGODB_URI is fatal.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MongoURI, validation.Required.Error("MONGODB_URI is required")),
		validation.Field(&c.MongoDatabase, validation.Required),
		validation.Field(&c.AppEnv, validation.Required, validation.In(EnvDevelopment, EnvProduction, EnvTest)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535))),
		validation.Field(&c.RateLimitMaxRequests, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(int64(1)))),
		validation.Field(&c.RateLimitWindow, validation.When(c.RateLimitEnabled, validation.Required)),
		validation.Field(&c.JWTSecret,
			validation.Required,
			validation.When(c.IsProduction(),
				validation.NotIn(DefaultJWTSecret).Error("JWT_SECRET must be changed from the default in production"),
			),
		),
		validation.Field(&c.JWTExpiration, validation.Required),
		validation.Field(&c.ShutdownTimeout, validation.Required),
	)
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// IsDevelopment reports whether the application runs in development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// GetGinMode returns the appropriate Gin mode based on environment and log level.
func (c *Config) GetGinMode() string {
	if c.AppEnv == EnvTest {
		return "test"
	}
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
