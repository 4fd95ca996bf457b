package httputil

import (
	"github.com/gin-gonic/gin"

	"github.com/iamRazzakk/storefront-api/internal/pagination"
)

// ParsePagination reads listing parameters from the request query string.
// Invalid values never fail the request; they fall back to defaults.
func ParsePagination(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Request.URL.Query())
}
