package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/iamRazzakk/storefront-api/internal/auth/usecase"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
)

const bearerPrefix = "bearer "

// errMissingToken is reported when no usable bearer token was sent.
var errMissingToken = apperrors.Unauthorized("You are not authorized")

// AuthenticationMiddleware resolves the "Authorization: Bearer <token>" header
// (the scheme is case-insensitive) to a user and stores it in the request
// context. Expired tokens fail as "Session Expired", forged or malformed ones
// as "Invalid Token".
func AuthenticationMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, errMissingToken)
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, errMissingToken)
			return
		}

		user, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err)
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		logger.Debug("authentication successful", slog.String("user_id", user.ID.Hex()))
		c.Next()
	}
}
