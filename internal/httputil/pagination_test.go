package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		url      string
		expected pagination.Params
	}{
		{
			name:     "default values",
			url:      "/",
			expected: pagination.Params{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: pagination.Desc},
		},
		{
			name:     "valid custom values",
			url:      "/?page=2&limit=20&sortBy=name&sortOrder=asc",
			expected: pagination.Params{Page: 2, Limit: 20, SortBy: "name", SortOrder: pagination.Asc},
		},
		{
			name:     "limit exceeds max",
			url:      "/?limit=101",
			expected: pagination.Params{Page: 1, Limit: 100, SortBy: "createdAt", SortOrder: pagination.Desc},
		},
		{
			name:     "page not an integer",
			url:      "/?page=abc",
			expected: pagination.Params{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: pagination.Desc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			c.Request = req

			assert.Equal(t, tt.expected, httputil.ParsePagination(c))
		})
	}
}
