package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/iamRazzakk/storefront-api/internal/pagination"
)

// Page is one page of documents together with the total match count.
type Page[T any] struct {
	Items []T
	Total int64
}

// Meta returns the pagination block for the page.
func (p Page[T]) Meta(params pagination.Params) pagination.Meta {
	return pagination.NewMeta(p.Total, params.Page, params.Limit)
}

// SortDocument builds the sort specification for params, restricted to the
// allowed keys. _id breaks ties so pages are stable.
func SortDocument(params pagination.Params, allowedSort ...string) bson.D {
	if len(allowedSort) > 0 {
		params = params.WithAllowedSort(allowedSort...)
	}
	sort := bson.D{{Key: params.SortBy, Value: params.Direction()}}
	if params.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: params.Direction()})
	}
	return sort
}

// FindPage runs the page query and the count for filter concurrently.
func FindPage[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	params pagination.Params,
	allowedSort ...string,
) (Page[T], error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		opts := options.Find().
			SetSort(SortDocument(params, allowedSort...)).
			SetSkip(params.Skip()).
			SetLimit(int64(params.Limit))

		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("failed to find %s: %w", coll.Name(), err)
		}
		if err := cursor.All(gctx, &items); err != nil {
			return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
		}
		return nil
	})

	g.Go(func() error {
		n, err := coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", coll.Name(), err)
		}
		total = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}

	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total}, nil
}
