package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

const metricsDomain = "products"

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	start := time.Now()
	created, err := p.next.Create(ctx, product)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_create", start, err)
	return created, err
}

func (p *productUseCaseWithMetrics) Get(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Get(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) List(
	ctx context.Context,
	filter domain.Filter,
	params pagination.Params,
) (database.Page[domain.Product], error) {
	start := time.Now()
	page, err := p.next.List(ctx, filter, params)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_list", start, err)
	return page, err
}

func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, id, patch)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Delete(ctx context.Context, id bson.ObjectID) error {
	start := time.Now()
	err := p.next.Delete(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_delete", start, err)
	return err
}
