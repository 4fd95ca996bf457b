// Package repository implements product persistence on MongoDB.
package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
)

// CollectionName is the MongoDB collection holding products.
const CollectionName = "products"

// SortableFields are the keys a product listing may be sorted by.
var SortableFields = []string{"createdAt", "updatedAt", "name", "price", "stock"}

// Indexes returns the indexes the products collection needs. The unique sku
// index is the final authority on SKU uniqueness.
func Indexes() database.IndexSpec {
	return database.IndexSpec{
		Collection: CollectionName,
		Models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "sku", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("sku_1"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("category_1_createdAt_-1"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("status_1_createdAt_-1"),
			},
		},
	}
}

// MongoProductRepository stores products in a MongoDB collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a repository on db's products collection.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(CollectionName)}
}

// now returns the current time at the millisecond precision MongoDB stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create inserts product, assigning its id and timestamps.
func (r *MongoProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}
	ts := now()
	product.CreatedAt = ts
	product.UpdatedAt = ts

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return database.TranslateError(err, nil)
	}
	return nil
}

// NextSKU returns PRD-<count+1>. Concurrent creates may compute the same
// value; the unique index rejects the loser.
func (r *MongoProductRepository) NextSKU(ctx context.Context) (string, error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return "", fmt.Errorf("failed to count products: %w", err)
	}
	return fmt.Sprintf("PRD-%06d", count+1), nil
}

// GetByID returns the product with id or domain.ErrProductNotFound.
func (r *MongoProductRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if err != nil {
		return nil, database.TranslateError(err, domain.ErrProductNotFound)
	}
	return &product, nil
}

// List returns one page of products matching filter.
func (r *MongoProductRepository) List(
	ctx context.Context,
	filter domain.Filter,
	params pagination.Params,
) (database.Page[domain.Product], error) {
	return database.FindPage[domain.Product](ctx, r.coll, FilterDocument(filter), params, SortableFields...)
}

// Update applies patch to the product with id and returns the updated document.
func (r *MongoProductRepository) Update(
	ctx context.Context,
	id bson.ObjectID,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: SetDocument(patch, now())}},
		opts,
	).Decode(&product)
	if err != nil {
		return nil, database.TranslateError(err, domain.ErrProductNotFound)
	}
	return &product, nil
}

// Delete removes the product with id.
func (r *MongoProductRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// FilterDocument builds the query for a listing filter. The search term is
// quoted so that it matches literally.
func FilterDocument(filter domain.Filter) bson.D {
	doc := bson.D{}
	if filter.Category != "" {
		doc = append(doc, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Status != "" {
		doc = append(doc, bson.E{Key: "status", Value: filter.Status})
	}
	if filter.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		doc = append(doc, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
			bson.D{{Key: "tags", Value: pattern}},
		}})
	}
	return doc
}

// SetDocument builds the $set document for patch, always bumping updatedAt.
func SetDocument(patch domain.ProductPatch, updatedAt time.Time) bson.D {
	set := bson.D{}
	add := func(key string, value any) {
		set = append(set, bson.E{Key: key, Value: value})
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Stock != nil {
		add("stock", *patch.Stock)
	}
	if patch.SKU != nil {
		add("sku", *patch.SKU)
	}
	if patch.Weight != nil {
		add("weight", *patch.Weight)
	}
	if patch.Dimensions != nil {
		add("dimensions", *patch.Dimensions)
	}
	if patch.Images != nil {
		add("images", patch.Images)
	}
	if patch.Tags != nil {
		add("tags", patch.Tags)
	}
	add("updatedAt", updatedAt)

	return set
}
