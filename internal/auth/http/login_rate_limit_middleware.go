package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// LoginRateLimiter keeps one token bucket per client IP for the sign in route.
// Stop must be called to end its cleanup goroutine.
type LoginRateLimiter struct {
	limiters sync.Map // client IP -> *limiterEntry
	rps      float64
	burst    int
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

type limiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// NewLoginRateLimiter creates a limiter allowing rps requests per second with
// the given burst per client IP, and starts its cleanup goroutine.
func NewLoginRateLimiter(rps float64, burst int, logger *slog.Logger) *LoginRateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	l := &LoginRateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTTL)
	return l
}

// Middleware rejects requests beyond the client's budget with 429 and a
// Retry-After header.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := l.limiter(clientIP, time.Now())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			l.logger.Debug("login rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httputil.HandleErrorGin(c, apperrors.NewAPIError(
				http.StatusTooManyRequests,
				"Too many login attempts, please try again later",
			))
			return
		}

		c.Next()
	}
}

// Stop ends the cleanup goroutine and waits for it to exit.
func (l *LoginRateLimiter) Stop() {
	l.cancel()
	<-l.done
}

func (l *LoginRateLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	if val, ok := l.limiters.Load(ip); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(l.rps), l.burst),
		lastAccess: now,
	}
	actual, _ := l.limiters.LoadOrStore(ip, entry)
	return actual.(*limiterEntry).limiter
}

func (l *LoginRateLimiter) cleanupStale(ctx context.Context, interval, ttl time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.evictIdle(now.Add(-ttl))
		}
	}
}

// evictIdle drops the buckets of clients not seen since threshold.
func (l *LoginRateLimiter) evictIdle(threshold time.Time) {
	l.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			l.limiters.Delete(key)
		}
		return true
	})
}
