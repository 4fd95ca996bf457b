package dto

import (
	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

// ListProductsResponse is the data block of product listings.
type ListProductsResponse struct {
	Products   []domain.Product `json:"products"`
	Category   string           `json:"category,omitempty"`
	Pagination pagination.Meta  `json:"pagination"`
}

// DeleteProductResponse echoes the id of a deleted product.
type DeleteProductResponse struct {
	ID string `json:"id"`
}

// MapPageToListResponse converts a page of products to the listing response.
func MapPageToListResponse(page database.Page[domain.Product], params pagination.Params) ListProductsResponse {
	products := page.Items
	if products == nil {
		products = []domain.Product{}
	}
	return ListProductsResponse{
		Products:   products,
		Pagination: page.Meta(params),
	}
}
