// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/iamRazzakk/storefront-api/internal/user/domain"
	appValidation "github.com/iamRazzakk/storefront-api/internal/validation"
)

var passwordPolicy = appValidation.PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

var userSchema = appValidation.Schema{
	"name": {
		Required: true,
		Rules: []validation.Rule{
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters long"),
			validation.RuneLength(0, 100).Error("Name is too long"),
		},
	},
	"email": {
		Required: true,
		Rules:    []validation.Rule{appValidation.Email.Error("Please provide a valid email")},
	},
	"password": {
		Required: true,
		Rules:    []validation.Rule{passwordPolicy},
	},
	"age": {
		Required:  true,
		AllowZero: true,
		Rules: []validation.Rule{
			appValidation.Integer.Error("Age must be an integer"),
			appValidation.Min(domain.MinAge).Error("min age 13"),
			appValidation.Max(domain.MaxAge).Error("Age invalid"),
		},
	},
	"contact": {Rules: []validation.Rule{appValidation.Contact}},
	"role": {
		Rules: []validation.Rule{
			validation.In(domain.RoleValues()...).
				Error("Invalid enum value. Expected 'user' | 'admin' | 'super_admin'"),
		},
	},
}

// UserRequest is the body of user create and update requests. The password is
// only read on create.
type UserRequest struct {
	Name     *string               `json:"name"`
	Email    *string               `json:"email"`
	Password *string               `json:"password"`
	Age      *appValidation.Number `json:"age"`
	Contact  *string               `json:"contact"`
	Role     *string               `json:"role"`
}

// Normalize trims name and email, drops the password on update and defaults
// the role on create.
func (r *UserRequest) Normalize(mode appValidation.Mode) {
	r.Name = trimmed(r.Name)
	r.Email = trimmed(r.Email)

	if mode != appValidation.ModeCreate {
		r.Password = nil
		return
	}
	if r.Role == nil {
		role := string(domain.RoleUser)
		r.Role = &role
	}
}

// ValidateMode implements validation.Target.
func (r *UserRequest) ValidateMode(mode appValidation.Mode) error {
	f := userSchema.Fields(mode)
	fields := []*validation.FieldRules{
		validation.Field(&r.Name, f["name"]...),
		validation.Field(&r.Email, f["email"]...),
		validation.Field(&r.Age, f["age"]...),
		validation.Field(&r.Contact, f["contact"]...),
		validation.Field(&r.Role, f["role"]...),
	}
	if mode == appValidation.ModeCreate {
		fields = append(fields, validation.Field(&r.Password, f["password"]...))
	}
	return validation.ValidateStruct(r, fields...)
}

// ToUser maps a validated create request to a new user.
func (r *UserRequest) ToUser() *domain.User {
	u := &domain.User{}
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Password != nil {
		u.Password = *r.Password
	}
	if r.Age != nil {
		u.Age = int(r.Age.Float64())
	}
	if r.Contact != nil {
		u.Contact = *r.Contact
	}
	if r.Role != nil {
		u.Role = domain.Role(*r.Role)
	}
	return u
}

// ToPatch maps a validated update request to a user patch.
func (r *UserRequest) ToPatch() domain.UserPatch {
	patch := domain.UserPatch{
		Name:    r.Name,
		Email:   r.Email,
		Contact: r.Contact,
	}
	if r.Age != nil {
		age := int(r.Age.Float64())
		patch.Age = &age
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
