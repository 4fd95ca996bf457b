// Package usecase implements the product catalog operations.
package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	NextSKU(ctx context.Context) (string, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.Product, error)
	List(ctx context.Context, filter domain.Filter, params pagination.Params) (database.Page[domain.Product], error)
	Update(ctx context.Context, id bson.ObjectID, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// ProductUseCase defines the product business operations.
type ProductUseCase interface {
	// Create assigns a SKU when none is given, validates and stores product.
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id bson.ObjectID) (*domain.Product, error)
	List(ctx context.Context, filter domain.Filter, params pagination.Params) (database.Page[domain.Product], error)
	Update(ctx context.Context, id bson.ObjectID, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
