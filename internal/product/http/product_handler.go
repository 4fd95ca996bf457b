// Package http provides HTTP handlers for the product catalog.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
	"github.com/iamRazzakk/storefront-api/internal/product/http/dto"
	"github.com/iamRazzakk/storefront-api/internal/product/usecase"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// ProductHandler handles product HTTP requests.
type ProductHandler struct {
	productUseCase usecase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(productUseCase usecase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// RegisterRoutes mounts the product routes on rg.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.CreateHandler)
		products.GET("", h.ListHandler)
		products.GET("/category/:category", h.ListByCategoryHandler)
		products.GET("/:id", h.GetHandler)
		products.PUT("/:id", h.UpdateHandler)
		products.DELETE("/:id", h.DeleteHandler)
	}
}

// CreateHandler creates a product, generating its SKU when none is given.
// POST /api/v1/products
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	var req dto.ProductRequest
	if err := appValidation.Bind(c, &req, appValidation.ModeCreate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), req.ToProduct())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	h.logger.Info("product created",
		slog.String("id", product.ID.Hex()),
		slog.String("sku", product.SKU),
	)
	httputil.RespondSuccess(c, http.StatusCreated, "Product created successfully", product)
}

// ListHandler lists products filtered by category, status and search.
// GET /api/v1/products?page=1&limit=10&sortBy=createdAt&sortOrder=desc
func (h *ProductHandler) ListHandler(c *gin.Context) {
	params := httputil.ParsePagination(c)
	filter := domain.Filter{
		Category: domain.Category(c.Query("category")),
		Status:   domain.Status(c.Query("status")),
		Search:   c.Query("search"),
	}

	page, err := h.productUseCase.List(c.Request.Context(), filter, params)
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "Products fetched successfully",
		dto.MapPageToListResponse(page, params))
}

// ListByCategoryHandler lists the products of one category.
// GET /api/v1/products/category/:category?page=1&limit=10
func (h *ProductHandler) ListByCategoryHandler(c *gin.Context) {
	category := dto.CategoryParams{Category: c.Param("category")}
	if err := appValidation.Validate(&category, appValidation.ModeCreate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	params := httputil.ParsePagination(c)
	params.SortBy = pagination.DefaultSortBy
	params.SortOrder = pagination.Desc

	page, err := h.productUseCase.List(c.Request.Context(), domain.Filter{
		Category: domain.Category(category.Category),
	}, params)
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	response := dto.MapPageToListResponse(page, params)
	response.Category = category.Category
	httputil.RespondSuccess(c, http.StatusOK,
		fmt.Sprintf("Products in %s category fetched successfully", category.Category), response)
}

// GetHandler returns one product.
// GET /api/v1/products/:id
func (h *ProductHandler) GetHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	product, err := h.productUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "Product fetched successfully", product)
}

// UpdateHandler applies a partial update.
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	var req dto.ProductRequest
	if err := appValidation.Bind(c, &req, appValidation.ModeUpdate); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	product, err := h.productUseCase.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteHandler removes a product.
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	id, err := appValidation.ParseObjectID("id", c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	if err := h.productUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err)
		return
	}

	httputil.RespondSuccess(c, http.StatusOK, "Product deleted successfully",
		dto.DeleteProductResponse{ID: id.Hex()})
}
