// Package usecase implements sign in and session verification.
package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// UserRepository defines the user lookups and counters sign in needs.
type UserRepository interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	RecordLoginFailure(ctx context.Context, id bson.ObjectID) error
	RecordLoginSuccess(ctx context.Context, id bson.ObjectID, at time.Time) (*userDomain.User, error)
}

// AuthUseCase defines the authentication business operations.
type AuthUseCase interface {
	// Login verifies credentials and issues a session token. A wrong password
	// increments the user's failed attempt counter; success resets it and
	// stamps lastLogin.
	Login(ctx context.Context, credentials domain.Credentials) (*domain.Session, error)

	// Authenticate resolves a bearer token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (*userDomain.User, error)
}
