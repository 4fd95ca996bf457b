// Package domain defines the user account model.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.NewNotFoundError("User")

	// ErrUserBanned is returned when a banned user tries to sign in.
	ErrUserBanned = apperrors.Forbidden("User is banned")
)

// Age bounds accepted for an account.
const (
	MinAge = 13
	MaxAge = 150
)

// Role is the permission level of a user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// RoleValues returns the roles as plain strings for "in" rules.
func RoleValues() []any {
	values := make([]any, len(Roles))
	for i, r := range Roles {
		values[i] = string(r)
	}
	return values
}

// Authentication holds password reset state. It is internal and never
// rendered in responses.
type Authentication struct {
	IsResetPassword bool       `bson:"isResetPassword"`
	OneTimeCode     *int       `bson:"oneTimeCode,omitempty"`
	ExpireAt        *time.Time `bson:"expireAt,omitempty"`
}

// User is an account stored in the users collection.
type User struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Email          string         `bson:"email" json:"email"`
	Password       string         `bson:"password" json:"-"`
	Age            int            `bson:"age" json:"age"`
	Contact        string         `bson:"contact,omitempty" json:"contact,omitempty"`
	Role           Role           `bson:"role" json:"role"`
	IsBanned       bool           `bson:"isBanned" json:"isBanned"`
	IsDeleted      bool           `bson:"isDeleted" json:"isDeleted"`
	LoginAttempts  int            `bson:"loginAttempts" json:"loginAttempts"`
	LastLogin      *time.Time     `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Authentication Authentication `bson:"authentication" json:"-"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the persisted invariants of a user and returns a
// *ModelValidationError listing every violated field.
func (u *User) Validate() error {
	return appValidation.ModelError(validation.ValidateStruct(u,
		validation.Field(&u.Name,
			validation.Required.Error("Name is required"),
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters long"),
			validation.RuneLength(0, 100).Error("Name cannot exceed 100 characters"),
		),
		validation.Field(&u.Email,
			validation.Required.Error("Email is required"),
			appValidation.Email.Error("Please provide a valid email"),
		),
		validation.Field(&u.Password, validation.Required.Error("Password is required")),
		validation.Field(&u.Age,
			appValidation.Between(MinAge, MaxAge).Error("Age must be between 13 and 150"),
		),
		validation.Field(&u.Contact, appValidation.Contact),
		validation.Field(&u.Role,
			validation.By(func(any) error {
				if !u.Role.IsValid() {
					return validation.NewError("validation_enum", "`"+string(u.Role)+"` is not a valid enum value for path `role`")
				}
				return nil
			}),
		),
	))
}

// ApplyDefaults fills the fields that default on creation.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// CanLogin reports why u may not sign in, or nil when it may.
func (u *User) CanLogin() error {
	if u.IsDeleted {
		return ErrUserNotFound
	}
	if u.IsBanned {
		return ErrUserBanned
	}
	return nil
}

// UserPatch carries the fields of a partial update. The password cannot be
// changed through a patch.
type UserPatch struct {
	Name    *string
	Email   *string
	Age     *int
	Contact *string
	Role    *Role
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.Contact == nil && p.Role == nil
}

// Apply copies the set fields of the patch onto user.
func (p UserPatch) Apply(user *User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Age != nil {
		user.Age = *p.Age
	}
	if p.Contact != nil {
		user.Contact = *p.Contact
	}
	if p.Role != nil {
		user.Role = *p.Role
	}
}
