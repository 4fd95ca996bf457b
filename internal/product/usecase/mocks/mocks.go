// Package mocks provides mock implementations of the product use case and
// repository for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

// MockProductUseCase is a mock implementation of ProductUseCase.
type MockProductUseCase struct {
	mock.Mock
}

// NewMockProductUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockProductUseCase(t *testing.T) *MockProductUseCase {
	m := &MockProductUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockProductUseCase) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// Get mocks the Get method.
func (m *MockProductUseCase) Get(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// List mocks the List method.
func (m *MockProductUseCase) List(
	ctx context.Context,
	filter domain.Filter,
	params pagination.Params,
) (database.Page[domain.Product], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(database.Page[domain.Product]), args.Error(1)
}

// Update mocks the Update method.
func (m *MockProductUseCase) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockProductUseCase) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository creates a mock whose expectations are asserted on cleanup.
func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// NextSKU mocks the NextSKU method.
func (m *MockProductRepository) NextSKU(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockProductRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// List mocks the List method.
func (m *MockProductRepository) List(
	ctx context.Context,
	filter domain.Filter,
	params pagination.Params,
) (database.Page[domain.Product], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(database.Page[domain.Product]), args.Error(1)
}

// Update mocks the Update method.
func (m *MockProductRepository) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockProductRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
