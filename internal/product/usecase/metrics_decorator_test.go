package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/metrics"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
	"github.com/iamRazzakk/storefront-api/internal/product/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "products", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "products", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestNewProductUseCaseWithMetrics(t *testing.T) {
	decorator := NewProductUseCaseWithMetrics(mocks.NewMockProductUseCase(t), &mockBusinessMetrics{})

	assert.Implements(t, (*ProductUseCase)(nil), decorator)
}

func TestProductMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()

	t.Run("Success_Create", func(t *testing.T) {
		next := mocks.NewMockProductUseCase(t)
		m := &mockBusinessMetrics{}
		product := &domain.Product{Name: "Lamp"}

		next.On("Create", ctx, product).Return(product, nil).Once()
		expectMetrics(m, "product_create", metrics.StatusSuccess)

		created, err := NewProductUseCaseWithMetrics(next, m).Create(ctx, product)

		require.NoError(t, err)
		assert.Same(t, product, created)
		m.AssertExpectations(t)
	})

	t.Run("Error_Get", func(t *testing.T) {
		next := mocks.NewMockProductUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Get", ctx, id).Return(nil, domain.ErrProductNotFound).Once()
		expectMetrics(m, "product_get", metrics.StatusError)

		_, err := NewProductUseCaseWithMetrics(next, m).Get(ctx, id)

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		m.AssertExpectations(t)
	})

	t.Run("Success_List", func(t *testing.T) {
		next := mocks.NewMockProductUseCase(t)
		m := &mockBusinessMetrics{}
		params := pagination.Params{Page: 1, Limit: 10}

		next.On("List", ctx, domain.Filter{}, params).Return(database.Page[domain.Product]{}, nil).Once()
		expectMetrics(m, "product_list", metrics.StatusSuccess)

		_, err := NewProductUseCaseWithMetrics(next, m).List(ctx, domain.Filter{}, params)

		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Error_Update", func(t *testing.T) {
		next := mocks.NewMockProductUseCase(t)
		m := &mockBusinessMetrics{}
		patch := domain.ProductPatch{}

		next.On("Update", ctx, id, patch).Return(nil, errors.New("boom")).Once()
		expectMetrics(m, "product_update", metrics.StatusError)

		_, err := NewProductUseCaseWithMetrics(next, m).Update(ctx, id, patch)

		assert.Error(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Success_Delete", func(t *testing.T) {
		next := mocks.NewMockProductUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Delete", ctx, id).Return(nil).Once()
		expectMetrics(m, "product_delete", metrics.StatusSuccess)

		require.NoError(t, NewProductUseCaseWithMetrics(next, m).Delete(ctx, id))
		m.AssertExpectations(t)
	})
}
