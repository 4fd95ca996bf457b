package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
)

// strictTransportSecurity is sent on plain HTTP responses too: TLS
// terminates in front of the service.
const strictTransportSecurity = "max-age=31536000; includeSubDomains"

// RequestIDMiddleware reuses an inbound X-Request-ID header or generates a
// UUIDv7, and echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	}))
}

// SecurityHeadersMiddleware sets the hardening headers on every response
// before the handler runs. gin-contrib/secure only emits
// Strict-Transport-Security for TLS requests, so that header is set here.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	hardening := secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", strictTransportSecurity)
		hardening(c)
	}
}

// CustomLoggerMiddleware logs the inbound request and its completion to the
// structured sink and the console stream. Completion severity follows the
// status class: error from 400, warn from 300, info otherwise.
func CustomLoggerMiddleware(logger *slog.Logger, console zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		reqID := requestid.Get(c)

		console.Info().Msgf("%s %s", method, path)
		logger.Info("incoming request",
			slog.String("request_id", reqID),
			slog.String("method", method),
			slog.String("path", path),
			slog.Time("timestamp", start.UTC()),
		)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", reqID),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		level := slog.LevelInfo
		event := console.Info()
		switch {
		case status >= http.StatusBadRequest:
			level = slog.LevelError
			event = console.Error()
		case status >= http.StatusMultipleChoices:
			level = slog.LevelWarn
			event = console.Warn()
		}

		logger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
		event.
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msgf("%s %s", method, path)
	}
}

// RecoveryMiddleware converts a panic into an uncaught internal failure
// carrying the goroutine stack, rendered by the error renderer.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		httputil.HandleErrorGin(c, &apperrors.TransportError{
			Kind:  apperrors.UncaughtInternal,
			Err:   fmt.Errorf("panic: %v", recovered),
			Stack: string(debug.Stack()),
		})
	})
}

// NotFoundHandler reports an unmatched route.
func NotFoundHandler(c *gin.Context) {
	httputil.HandleErrorGin(c, &apperrors.TransportError{
		Kind: apperrors.UnmatchedRoute,
		Err:  fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
	})
}

// RateLimitMiddleware applies a fixed window limit per client IP. Exceeding
// it answers 429 with a plain text body.
func RateLimitMiddleware(window time.Duration, maxRequests int64, logger *slog.Logger) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: window,
		Limit:  maxRequests,
	})

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusTooManyRequests, "Too many requests")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			httputil.HandleErrorGin(c, apperrors.Wrap(err, "rate limiter failure"))
		}),
	)
}
