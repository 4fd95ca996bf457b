package app

import (
	"fmt"

	productHTTP "github.com/iamRazzakk/storefront-api/internal/product/http"
	productRepository "github.com/iamRazzakk/storefront-api/internal/product/repository"
	productUseCase "github.com/iamRazzakk/storefront-api/internal/product/usecase"
)

// ProductRepository returns the MongoDB product repository.
func (c *Container) ProductRepository() (productUseCase.ProductRepository, error) {
	var err error
	c.productRepositoryInit.Do(func() {
		c.productRepository, err = c.initProductRepository()
		if err != nil {
			c.initErrors["productRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productRepository"]; exists {
		return nil, storedErr
	}
	return c.productRepository, nil
}

// ProductUseCase returns the product use case.
func (c *Container) ProductUseCase() (productUseCase.ProductUseCase, error) {
	var err error
	c.productUseCaseInit.Do(func() {
		c.productUseCase, err = c.initProductUseCase()
		if err != nil {
			c.initErrors["productUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productUseCase"]; exists {
		return nil, storedErr
	}
	return c.productUseCase, nil
}

// ProductHandler returns the HTTP handler for product operations.
func (c *Container) ProductHandler() (*productHTTP.ProductHandler, error) {
	var err error
	c.productHandlerInit.Do(func() {
		c.productHandler, err = c.initProductHandler()
		if err != nil {
			c.initErrors["productHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productHandler"]; exists {
		return nil, storedErr
	}
	return c.productHandler, nil
}

// initProductRepository creates the product repository on the configured database.
func (c *Container) initProductRepository() (productUseCase.ProductRepository, error) {
	db, err := c.Database()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}
	return productRepository.NewMongoProductRepository(db), nil
}

// initProductUseCase creates the product use case with all its dependencies.
func (c *Container) initProductUseCase() (productUseCase.ProductUseCase, error) {
	repo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	baseUseCase := productUseCase.NewProductUseCase(repo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}
		return productUseCase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initProductHandler creates the product HTTP handler with all its dependencies.
func (c *Container) initProductHandler() (*productHTTP.ProductHandler, error) {
	useCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for product handler: %w", err)
	}
	return productHTTP.NewProductHandler(useCase, c.Logger()), nil
}
