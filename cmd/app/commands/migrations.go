package commands

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iamRazzakk/storefront-api/internal/database"
	productRepository "github.com/iamRazzakk/storefront-api/internal/product/repository"
	userRepository "github.com/iamRazzakk/storefront-api/internal/user/repository"
)

// RunMigrations creates the unique and listing indexes of the products and
// users collections. Running it again is a no-op.
func RunMigrations(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	logger.Info("running database migrations", slog.String("database", db.Name()))

	if err := database.EnsureIndexes(ctx, db, logger,
		productRepository.Indexes(),
		userRepository.Indexes(),
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
