package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// IndexSpec lists the indexes a collection needs.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

// EnsureIndexes creates every index in specs. Existing identical indexes are
// left untouched by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger, specs ...IndexSpec) error {
	for _, spec := range specs {
		if len(spec.Models) == 0 {
			continue
		}
		names, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", spec.Collection, err)
		}
		if logger != nil {
			logger.Info("indexes ensured",
				slog.String("collection", spec.Collection),
				slog.Any("indexes", names),
			)
		}
	}
	return nil
}
