package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

type productUseCase struct {
	repo ProductRepository
}

// NewProductUseCase creates a ProductUseCase backed by repo.
func NewProductUseCase(repo ProductRepository) ProductUseCase {
	return &productUseCase{repo: repo}
}

func (uc *productUseCase) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.ApplyDefaults()
	product.SKU = strings.ToUpper(strings.TrimSpace(product.SKU))

	if product.SKU == "" {
		sku, err := uc.repo.NextSKU(ctx)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to generate sku")
		}
		product.SKU = sku
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) Get(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *productUseCase) List(
	ctx context.Context,
	filter domain.Filter,
	params pagination.Params,
) (database.Page[domain.Product], error) {
	return uc.repo.List(ctx, filter, params)
}

// Update validates the patched product before writing only the changed fields.
func (uc *productUseCase) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	if patch.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*patch.SKU))
		patch.SKU = &sku
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	patch.Apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	return uc.repo.Update(ctx, id, patch)
}

func (uc *productUseCase) Delete(ctx context.Context, id bson.ObjectID) error {
	return uc.repo.Delete(ctx, id)
}
