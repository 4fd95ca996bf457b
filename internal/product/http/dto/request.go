// Package dto provides data transfer objects for the product HTTP layer.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/iamRazzakk/storefront-api/internal/product/domain"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

var dimensionsSchema = appValidation.Schema{
	"length": {Required: true, AllowZero: true, Rules: []validation.Rule{
		appValidation.NonNegative.Error("Length cannot be negative"),
	}},
	"width": {Required: true, AllowZero: true, Rules: []validation.Rule{
		appValidation.NonNegative.Error("Width cannot be negative"),
	}},
	"height": {Required: true, AllowZero: true, Rules: []validation.Rule{
		appValidation.NonNegative.Error("Height cannot be negative"),
	}},
}

// dimensionsFields requires all three sizes whenever the object is sent,
// in both create and update requests.
var dimensionsFields = dimensionsSchema.Fields(appValidation.ModeCreate)

// DimensionsRequest is the optional size block of a product request.
type DimensionsRequest struct {
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// Validate implements validation.Validatable.
func (d *DimensionsRequest) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Length, dimensionsFields["length"]...),
		validation.Field(&d.Width, dimensionsFields["width"]...),
		validation.Field(&d.Height, dimensionsFields["height"]...),
	)
}

func (d *DimensionsRequest) toDomain() *domain.Dimensions {
	if d == nil {
		return nil
	}
	dims := &domain.Dimensions{}
	if d.Length != nil {
		dims.Length = *d.Length
	}
	if d.Width != nil {
		dims.Width = *d.Width
	}
	if d.Height != nil {
		dims.Height = *d.Height
	}
	return dims
}

var productSchema = appValidation.Schema{
	"name": {
		Required:        true,
		RequiredMessage: "Product name is required",
		Rules: []validation.Rule{
			validation.RuneLength(2, 0).Error("Product name must be at least 2 characters long"),
			validation.RuneLength(0, 100).Error("Product name is too long"),
		},
	},
	"description": {
		Required:        true,
		RequiredMessage: "Description is required",
		Rules: []validation.Rule{
			validation.RuneLength(10, 0).Error("Description must be at least 10 characters long"),
			validation.RuneLength(0, 1000).Error("Description is too long"),
		},
	},
	"price": {
		Required:    true,
		AllowZero:   true,
		Rules:       []validation.Rule{appValidation.NonNegative.Error("Price cannot be negative")},
		CreateRules: []validation.Rule{appValidation.Positive.Error("Price must be positive")},
	},
	"category": {
		Required:        true,
		RequiredMessage: "Invalid category",
		Rules:           []validation.Rule{validation.In(domain.CategoryValues()...).Error("Invalid category")},
	},
	"status": {
		Rules: []validation.Rule{validation.In(domain.StatusValues()...).Error("Invalid status")},
	},
	"stock": {
		AllowZero: true,
		Rules: []validation.Rule{
			appValidation.Integer.Error("Stock must be an integer"),
			appValidation.NonNegative.Error("Stock cannot be negative"),
		},
	},
	"sku":        {AllowZero: true},
	"weight":     {AllowZero: true, Rules: []validation.Rule{appValidation.NonNegative.Error("Weight cannot be negative")}},
	"dimensions": {AllowZero: true},
	"images": {
		AllowZero: true,
		Rules: []validation.Rule{
			validation.Length(0, domain.MaxImages).Error("Cannot have more than 10 images"),
			validation.Each(appValidation.URL.Error("Invalid image URL")),
		},
	},
	"tags": {
		AllowZero: true,
		Rules:     []validation.Rule{validation.Each(appValidation.NotBlank.Error("Tag cannot be empty"))},
	},
}

// ProductRequest is the body of product create and update requests. Every
// field is a pointer so that omitted fields can be told apart from zero values.
type ProductRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price"`
	Category    *string            `json:"category"`
	Status      *string            `json:"status"`
	Stock       *float64           `json:"stock"`
	SKU         *string            `json:"sku"`
	Weight      *float64           `json:"weight"`
	Dimensions  *DimensionsRequest `json:"dimensions"`
	Images      []string           `json:"images"`
	Tags        []string           `json:"tags"`
}

// Normalize trims text fields, upper-cases the SKU and, on create, applies
// the status, stock, images and tags defaults.
func (r *ProductRequest) Normalize(mode appValidation.Mode) {
	r.Name = trimmed(r.Name)
	r.Description = trimmed(r.Description)
	if r.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*r.SKU))
		r.SKU = &sku
		if sku == "" && mode == appValidation.ModeCreate {
			r.SKU = nil
		}
	}
	for i, tag := range r.Tags {
		r.Tags[i] = strings.TrimSpace(tag)
	}

	if mode != appValidation.ModeCreate {
		return
	}
	if r.Status == nil {
		status := string(domain.StatusActive)
		r.Status = &status
	}
	if r.Stock == nil {
		stock := 0.0
		r.Stock = &stock
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// ValidateMode implements validation.Target.
func (r *ProductRequest) ValidateMode(mode appValidation.Mode) error {
	f := productSchema.Fields(mode)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, f["name"]...),
		validation.Field(&r.Description, f["description"]...),
		validation.Field(&r.Price, f["price"]...),
		validation.Field(&r.Category, f["category"]...),
		validation.Field(&r.Status, f["status"]...),
		validation.Field(&r.Stock, f["stock"]...),
		validation.Field(&r.SKU, f["sku"]...),
		validation.Field(&r.Weight, f["weight"]...),
		validation.Field(&r.Dimensions, f["dimensions"]...),
		validation.Field(&r.Images, f["images"]...),
		validation.Field(&r.Tags, f["tags"]...),
	)
}

// ToProduct maps a validated create request to a new product.
func (r *ProductRequest) ToProduct() *domain.Product {
	p := &domain.Product{
		Weight:     r.Weight,
		Dimensions: r.Dimensions.toDomain(),
		Images:     r.Images,
		Tags:       r.Tags,
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = domain.Category(*r.Category)
	}
	if r.Status != nil {
		p.Status = domain.Status(*r.Status)
	}
	if r.Stock != nil {
		p.Stock = int64(*r.Stock)
	}
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	return p
}

// ToPatch maps a validated update request to a product patch.
func (r *ProductRequest) ToPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		SKU:         r.SKU,
		Weight:      r.Weight,
		Dimensions:  r.Dimensions.toDomain(),
		Images:      r.Images,
		Tags:        r.Tags,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		patch.Category = &category
	}
	if r.Status != nil {
		status := domain.Status(*r.Status)
		patch.Status = &status
	}
	if r.Stock != nil {
		stock := int64(*r.Stock)
		patch.Stock = &stock
	}
	return patch
}

// CategoryParams holds the path parameter of the category listing.
type CategoryParams struct {
	Category string `json:"category"`
}

// Validate implements validation.Validatable.
func (p *CategoryParams) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Category,
			validation.Required.Error("Invalid category"),
			validation.In(domain.CategoryValues()...).Error("Invalid category"),
		),
	)
}

// ValidateMode implements validation.Target.
func (p *CategoryParams) ValidateMode(appValidation.Mode) error {
	return p.Validate()
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
