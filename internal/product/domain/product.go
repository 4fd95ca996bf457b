// Package domain defines the product catalog model.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// ErrProductNotFound is returned when no product matches the requested id.
var ErrProductNotFound = apperrors.NewNotFoundError("Product")

// MaxImages is the largest number of image URLs a product may carry.
const MaxImages = 10

// Category groups products in the catalog.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryFood        Category = "food"
	CategorySports      Category = "sports"
	CategoryOther       Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryFood,
	CategorySports,
	CategoryOther,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the sales status of a product.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOutOfStock Status = "out_of_stock"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusActive, StatusInactive, StatusOutOfStock}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// CategoryValues returns the categories as plain strings for "in" rules.
func CategoryValues() []any {
	values := make([]any, len(Categories))
	for i, c := range Categories {
		values[i] = string(c)
	}
	return values
}

// StatusValues returns the statuses as plain strings for "in" rules.
func StatusValues() []any {
	values := make([]any, len(Statuses))
	for i, s := range Statuses {
		values[i] = string(s)
	}
	return values
}

// Dimensions holds the physical size of a product.
type Dimensions struct {
	Length float64 `bson:"length" json:"length"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

// Validate implements validation.Validatable.
func (d *Dimensions) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Length, appValidation.NonNegative.Error("Length cannot be negative")),
		validation.Field(&d.Width, appValidation.NonNegative.Error("Width cannot be negative")),
		validation.Field(&d.Height, appValidation.NonNegative.Error("Height cannot be negative")),
	)
}

// Product is a catalog entry stored in the products collection.
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
	Category    Category      `bson:"category" json:"category"`
	Status      Status        `bson:"status" json:"status"`
	Stock       int64         `bson:"stock" json:"stock"`
	SKU         string        `bson:"sku" json:"sku"`
	Weight      *float64      `bson:"weight,omitempty" json:"weight,omitempty"`
	Dimensions  *Dimensions   `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Images      []string      `bson:"images" json:"images"`
	Tags        []string      `bson:"tags" json:"tags"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the persisted invariants of a product and returns a
// *ModelValidationError listing every violated field.
func (p *Product) Validate() error {
	return appValidation.ModelError(validation.ValidateStruct(p,
		validation.Field(&p.Name,
			validation.Required.Error("Product name is required"),
			validation.RuneLength(2, 0).Error("Product name must be at least 2 characters long"),
			validation.RuneLength(0, 100).Error("Product name cannot exceed 100 characters"),
		),
		validation.Field(&p.Description,
			validation.Required.Error("Product description is required"),
			validation.RuneLength(10, 0).Error("Description must be at least 10 characters long"),
			validation.RuneLength(0, 1000).Error("Description cannot exceed 1000 characters"),
		),
		validation.Field(&p.Price, appValidation.NonNegative.Error("Price cannot be negative")),
		validation.Field(&p.Category,
			validation.Required.Error("Category is required"),
			validation.By(func(any) error {
				if !p.Category.IsValid() {
					return validation.NewError("validation_enum", "`"+string(p.Category)+"` is not a valid enum value for path `category`")
				}
				return nil
			}),
		),
		validation.Field(&p.Status,
			validation.By(func(any) error {
				if !p.Status.IsValid() {
					return validation.NewError("validation_enum", "`"+string(p.Status)+"` is not a valid enum value for path `status`")
				}
				return nil
			}),
		),
		validation.Field(&p.Stock, appValidation.NonNegative.Error("Stock cannot be negative")),
		validation.Field(&p.SKU, validation.Required.Error("SKU is required")),
		validation.Field(&p.Weight, appValidation.NonNegative.Error("Weight cannot be negative")),
		validation.Field(&p.Dimensions),
		validation.Field(&p.Images, validation.Length(0, MaxImages).Error("Cannot have more than 10 images")),
	))
}

// ApplyDefaults fills the fields that default on creation.
func (p *Product) ApplyDefaults() {
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// ProductPatch carries the fields of a partial update. Nil fields are left
// untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *Category
	Status      *Status
	Stock       *int64
	SKU         *string
	Weight      *float64
	Dimensions  *Dimensions
	Images      []string
	Tags        []string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil &&
		p.Status == nil && p.Stock == nil && p.SKU == nil && p.Weight == nil &&
		p.Dimensions == nil && p.Images == nil && p.Tags == nil
}

// Apply copies the set fields of the patch onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.SKU != nil {
		product.SKU = *p.SKU
	}
	if p.Weight != nil {
		product.Weight = p.Weight
	}
	if p.Dimensions != nil {
		product.Dimensions = p.Dimensions
	}
	if p.Images != nil {
		product.Images = p.Images
	}
	if p.Tags != nil {
		product.Tags = p.Tags
	}
}

// Filter narrows a product listing.
type Filter struct {
	Category Category
	Status   Status
	// Search is matched case-insensitively against name, description and tags.
	Search string
}
