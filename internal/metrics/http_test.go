package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_app"))
	router.GET("/api/v1/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})

	serve := func(method, path string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/v1/products/507f1f77bcf86cd799439011"))
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/v1/products/507f191e810c19729de860ea"))
	assert.Equal(t, http.StatusCreated, serve(http.MethodPost, "/api/v1/products"))
	assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/wp-admin"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `http_app_http_requests_total`,
		`method="GET".*path="/api/v1/products/:id".*status_code="200"`, `2`)
	assertMetricLine(t, output, `http_app_http_requests_total`,
		`method="POST".*path="/api/v1/products".*status_code="201"`, `1`)
	assertMetricLine(t, output, `http_app_http_request_duration_seconds_count`,
		`method="GET".*path="/api/v1/products/:id"`, `2`)
	assertMetricLine(t, output, `http_app_http_requests_in_flight`,
		`path="/api/v1/products/:id"`, `0`)
}

func TestHTTPMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("nomatch")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "nomatch"))
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "API not found")
	})

	for _, path := range []string{"/a", "/b", "/c"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assertMetricLine(t, scrape(t, provider), `nomatch_http_requests_total`,
		`path="unmatched".*status_code="404"`, `3`)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/api/v1/users/:id", expected: "/api/v1/users/:id"},
		{name: "EmptyPath", input: "", expected: UnmatchedRoute},
		{name: "RootPath", input: "/", expected: "/"},
		{name: "CategoryPattern", input: "/api/v1/products/category/:category", expected: "/api/v1/products/category/:category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}
