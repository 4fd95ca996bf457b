// Package http provides HTTP handlers for user accounts.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/user/http/dto"
	"github.com/iamRazzakk/storefront-api/internal/user/usecase"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// UserHandler handles user HTTP requests.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterRoutes mounts the user routes on rg.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.CreateHandler)
		users.GET("", h.ListHandler)
		users.GET("/:id", h.GetHandler)
		users.PUT("/:id", h.UpdateHandler)
		users.DELETE("/:id", h.DeleteHandler)
	}
}

// CreateHandler registers a user.
// POST /api/v1/users
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.UserRequest
	if err := appValidation.Bind(c, &req, appValidation.ModeCreate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), req.ToUser())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	h.logger.Info("user created", slog.String("id", user.ID.Hex()))
	httputil.RespondSuccess(c, http.StatusCreated, "User created successfully", user)
}

// ListHandler returns every user, newest first.
// GET /api/v1/users
func (h *UserHandler) ListHandler(c *gin.Context) {
	users, err := h.userUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "Users fetched successfully", users)
}

// GetHandler returns one user.
// GET /api/v1/users/:id
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "User fetched successfully", user)
}

// UpdateHandler applies a partial update. The password cannot be changed here.
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	var req dto.UserRequest
	if err := appValidation.Bind(c, &req, appValidation.ModeUpdate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "User updated successfully", user)
}

// DeleteHandler removes a user.
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "User deleted successfully",
		dto.DeleteUserResponse{ID: id.Hex()})
}
