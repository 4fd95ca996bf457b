// Package service provides the password hashing and session token services
// used by sign in.
package service

import (
	"time"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns the PHC encoded hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash never matches.
	Verify(password, hash string) bool
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue signs a token for user valid from now until the returned expiry.
	Issue(user *userDomain.User, now time.Time) (token string, expiresAt time.Time, err error)

	// Parse verifies token and returns its claims. Failures are *CredentialError
	// values, with Expired set when only the expiry check failed.
	Parse(token string) (*domain.Claims, error)
}
