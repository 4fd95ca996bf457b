// Package domain defines the authentication session model.
package domain

import (
	"time"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	userDomain "github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Both cases share one message so that a caller cannot probe for accounts.
var ErrInvalidCredentials = apperrors.Unauthorized("Invalid email or password")

// Credentials is a sign in attempt.
type Credentials struct {
	Email    string
	Password string
}

// Session is the outcome of a successful sign in.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *userDomain.User `json:"user"`
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    string
	Role      userDomain.Role
	ExpiresAt time.Time
}
