// Package dto provides data transfer objects for the auth HTTP layer.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/iamRazzakk/storefront-api/internal/auth/domain"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// LoginRequest is the body of a sign in request.
type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Normalize trims and lower-cases the email.
func (r *LoginRequest) Normalize(appValidation.Mode) {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
}

// ValidateMode implements validation.Target.
func (r *LoginRequest) ValidateMode(appValidation.Mode) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("Email is required"),
			appValidation.Email.Error("Please provide a valid email"),
		),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// ToCredentials maps a validated request to sign in credentials.
func (r *LoginRequest) ToCredentials() domain.Credentials {
	var credentials domain.Credentials
	if r.Email != nil {
		credentials.Email = *r.Email
	}
	if r.Password != nil {
		credentials.Password = *r.Password
	}
	return credentials
}
