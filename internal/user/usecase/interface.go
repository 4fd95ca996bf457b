// Package usecase implements user account operations.
package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id bson.ObjectID, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// PasswordHasher turns a plain password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserUseCase defines the user business operations.
type UserUseCase interface {
	// Create rejects an email already in use, hashes the password and stores user.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Get(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id bson.ObjectID, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
