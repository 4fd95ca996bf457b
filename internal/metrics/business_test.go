package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks the Prometheus output for a sample with the given
// name, partial label pattern and value. The exporter adds scope labels, so
// the labels are matched with a regexp.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_Record(t *testing.T) {
	provider, err := NewProvider("biz")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "biz")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "products", "product_create", StatusSuccess)
	bm.RecordOperation(ctx, "products", "product_create", StatusSuccess)
	bm.RecordOperation(ctx, "products", "product_create", StatusError)
	bm.RecordOperation(ctx, "users", "user_list", StatusSuccess)
	bm.RecordDuration(ctx, "products", "product_create", 50*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "products", "product_create", 70*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertMetricLine(t, output, `biz_operations_total`,
		`domain="products".*operation="product_create".*status="success"`, `2`)
	assertMetricLine(t, output, `biz_operations_total`,
		`domain="products".*operation="product_create".*status="error"`, `1`)
	assertMetricLine(t, output, `biz_operations_total`,
		`domain="users".*operation="user_list".*status="success"`, `1`)
	assertMetricLine(t, output, `biz_operation_duration_seconds_count`,
		`domain="products".*operation="product_create".*status="success"`, `2`)
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider("observe")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	Observe(ctx, bm, "auth", "auth_login", start, nil)
	Observe(ctx, bm, "auth", "auth_login", start, errors.New("bad credentials"))
	Observe(ctx, bm, "auth", "auth_login", start, errors.New("bad credentials"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `observe_operations_total`,
		`domain="auth".*operation="auth_login".*status="success"`, `1`)
	assertMetricLine(t, output, `observe_operations_total`,
		`domain="auth".*operation="auth_login".*status="error"`, `2`)
	assertMetricLine(t, output, `observe_operation_duration_seconds_count`,
		`domain="auth".*operation="auth_login".*status="error"`, `2`)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)
	assert.NotPanics(t, func() {
		noOpMetrics.RecordOperation(context.Background(), "products", "product_get", StatusSuccess)
		noOpMetrics.RecordDuration(context.Background(), "users", "user_delete", time.Second, StatusError)
		Observe(context.Background(), noOpMetrics, "auth", "auth_me", time.Now(), nil)
	})
}
