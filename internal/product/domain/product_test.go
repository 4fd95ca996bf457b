package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

func validProduct() *Product {
	return &Product{
		Name:        "Desk Lamp",
		Description: "An adjustable LED desk lamp",
		Price:       29.99,
		Category:    CategoryElectronics,
		Status:      StatusActive,
		Stock:       12,
		SKU:         "PRD-000001",
		Images:      []string{},
		Tags:        []string{},
	}
}

func TestProduct_Validate(t *testing.T) {
	t.Run("Success_ValidProduct", func(t *testing.T) {
		assert.NoError(t, validProduct().Validate())
	})

	t.Run("Error_CollectsEveryField", func(t *testing.T) {
		p := validProduct()
		p.Name = "L"
		p.Stock = -1
		p.Category = "toys"
		p.Dimensions = &Dimensions{Length: 1, Width: -2, Height: 1}
		p.Images = make([]string, MaxImages+1)

		err := p.Validate()

		var modelErr *apperrors.ModelValidationError
		require.ErrorAs(t, err, &modelErr)
		assert.Equal(t, map[string]string{
			"name":             "Product name must be at least 2 characters long",
			"stock":            "Stock cannot be negative",
			"category":         "`toys` is not a valid enum value for path `category`",
			"dimensions.width": "Width cannot be negative",
			"images":           "Cannot have more than 10 images",
		}, modelErr.Fields)
	})

	t.Run("Error_RequiredFields", func(t *testing.T) {
		p := validProduct()
		p.Name = ""
		p.SKU = ""
		p.Description = strings.Repeat("x", 1001)

		var modelErr *apperrors.ModelValidationError
		require.ErrorAs(t, p.Validate(), &modelErr)
		assert.Equal(t, "Product name is required", modelErr.Fields["name"])
		assert.Equal(t, "SKU is required", modelErr.Fields["sku"])
		assert.Equal(t, "Description cannot exceed 1000 characters", modelErr.Fields["description"])
	})
}

func TestProduct_ApplyDefaults(t *testing.T) {
	p := &Product{}
	p.ApplyDefaults()

	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, []string{}, p.Images)
	assert.Equal(t, []string{}, p.Tags)

	p = &Product{Status: StatusInactive}
	p.ApplyDefaults()
	assert.Equal(t, StatusInactive, p.Status)
}

func TestProductPatch_Apply(t *testing.T) {
	name := "Floor Lamp"
	stock := int64(0)
	product := validProduct()

	patch := ProductPatch{Name: &name, Stock: &stock, Tags: []string{"lighting"}}
	require.False(t, patch.IsEmpty())
	patch.Apply(product)

	assert.Equal(t, "Floor Lamp", product.Name)
	assert.Equal(t, int64(0), product.Stock)
	assert.Equal(t, []string{"lighting"}, product.Tags)
	assert.Equal(t, 29.99, product.Price)
	assert.True(t, ProductPatch{}.IsEmpty())
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Category("toys").IsValid())
	assert.False(t, Status("sold").IsValid())
	assert.Len(t, CategoryValues(), len(Categories))
	assert.Len(t, StatusValues(), len(Statuses))
}
