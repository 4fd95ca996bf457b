package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamRazzakk/storefront-api/internal/auth/http/dto"
	authUseCase "github.com/iamRazzakk/storefront-api/internal/auth/usecase"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// AuthHandler handles sign in and session requests.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// RegisterRoutes mounts the auth routes on rg. loginLimit, when non-nil, runs
// before the login handler.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	auth := rg.Group("/auth")

	login := []gin.HandlerFunc{h.LoginHandler}
	if loginLimit != nil {
		login = append([]gin.HandlerFunc{loginLimit}, login...)
	}
	auth.POST("/login", login...)
	auth.GET("/me", AuthenticationMiddleware(h.authUseCase, h.logger), h.MeHandler)
}

// LoginHandler exchanges credentials for a session token.
// POST /api/v1/auth/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := appValidation.Bind(c, &req, appValidation.ModeCreate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", session.User.ID.Hex()))
	httputil.RespondSuccess(c, http.StatusOK, "User logged in successfully", session)
}

// MeHandler returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) MeHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "User fetched successfully", user)
}
