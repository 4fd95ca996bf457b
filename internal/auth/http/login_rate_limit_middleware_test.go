package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newLimitedRouter(limiter *LoginRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.POST("/login", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func postFrom(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimiter_Burst(t *testing.T) {
	limiter := NewLoginRateLimiter(1, 2, discardLogger())
	defer limiter.Stop()
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.1").Code)

	w := postFrom(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestLoginRateLimiter_PerClientIP(t *testing.T) {
	limiter := NewLoginRateLimiter(0.01, 1, discardLogger())
	defer limiter.Stop()
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.2").Code)
}

func TestLoginRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewLoginRateLimiter(1, 1, discardLogger())
	defer limiter.Stop()

	now := time.Now()
	limiter.limiter("10.0.0.1", now.Add(-2*time.Hour))
	limiter.limiter("10.0.0.2", now)

	limiter.evictIdle(now.Add(-time.Hour))

	_, staleKept := limiter.limiters.Load("10.0.0.1")
	_, freshKept := limiter.limiters.Load("10.0.0.2")
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestLoginRateLimiter_StopEndsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	limiter := NewLoginRateLimiter(1, 1, discardLogger())
	limiter.Stop()
}
