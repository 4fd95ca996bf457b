// Package validation provides custom validation rules and the request validation gate.
package validation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// objectIDRegex matches the 24 hex character document identifier
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

	// contactRegex matches an optional leading plus followed by 10 to 15 digits
	contactRegex = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password meets minimum security requirements
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"Password minimum "+strconv.Itoa(p.MinLength)+" character",
		)
	}

	if p.RequireUpper && !hasUpperCase(s) {
		return validation.NewError(
			"validation_password_uppercase",
			"Password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !hasLowerCase(s) {
		return validation.NewError(
			"validation_password_lowercase",
			"Password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !hasNumber(s) {
		return validation.NewError("validation_password_number", "Password must contain at least one number")
	}

	if p.RequireSpecial && !hasSpecialChar(s) {
		return validation.NewError(
			"validation_password_special",
			"Password must contain at least one special character",
		)
	}

	return nil
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasLowerCase checks if string contains lowercase letters
func hasLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// hasSpecialChar reports whether s contains anything other than ASCII letters and digits.
func hasSpecialChar(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// Contact validates a phone number such as +8801700000000.
var Contact = validation.NewStringRuleWithError(
	func(s string) bool {
		return contactRegex.MatchString(s)
	},
	validation.NewError("validation_contact_format", "Phone number must be valid (e.g. +88017xxxxxxxx)"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a present string is not empty after trimming whitespace.
// Unlike the string rules above it rejects the empty string itself.
var NotBlank = stringRule{
	check: func(s string) bool { return strings.TrimSpace(s) != "" },
	err:   validation.NewError("validation_not_blank", "must not be blank"),
}

// URL validates an absolute URL with a scheme and host. Empty strings are rejected.
var URL = stringRule{
	check: func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	},
	err: validation.NewError("validation_url", "must be a valid URL"),
}

// ObjectID validates the 24 hex character document identifier format.
var ObjectID = stringRule{
	check: objectIDRegex.MatchString,
	err:   validation.NewError("validation_object_id", "Invalid ID format"),
}

// Positive validates a number strictly greater than zero.
var Positive = numberRule{
	check: func(f float64) bool { return f > 0 },
	err:   validation.NewError("validation_positive", "must be greater than 0"),
}

// NonNegative validates a number greater than or equal to zero.
var NonNegative = numberRule{
	check: func(f float64) bool { return f >= 0 },
	err:   validation.NewError("validation_non_negative", "cannot be negative"),
}

// Integer validates a number without a fractional part.
var Integer = numberRule{
	check: func(f float64) bool { return f == math.Trunc(f) },
	err:   validation.NewError("validation_integer", "must be an integer"),
}

// Between validates a number within [min, max]. Zero is checked like any other value.
func Between(min, max float64) numberRule {
	return numberRule{
		check: func(f float64) bool { return f >= min && f <= max },
		err: validation.NewError(
			"validation_between",
			"must be between "+strconv.FormatFloat(min, 'f', -1, 64)+" and "+strconv.FormatFloat(max, 'f', -1, 64),
		),
	}
}

// Min validates a number greater than or equal to min.
func Min(min float64) numberRule {
	return numberRule{
		check: func(f float64) bool { return f >= min },
		err:   validation.NewError("validation_min", "must be at least "+strconv.FormatFloat(min, 'f', -1, 64)),
	}
}

// Max validates a number less than or equal to max.
func Max(max float64) numberRule {
	return numberRule{
		check: func(f float64) bool { return f <= max },
		err:   validation.NewError("validation_max", "must be at most "+strconv.FormatFloat(max, 'f', -1, 64)),
	}
}

// stringRule checks non-nil string values, including the empty string.
type stringRule struct {
	check func(string) bool
	err   validation.Error
}

// Validate implements validation.Rule.
func (r stringRule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_string_type", "must be a string")
	}
	if !r.check(s) {
		return r.err
	}
	return nil
}

// Error returns a copy of the rule with a custom message.
func (r stringRule) Error(message string) stringRule {
	r.err = r.err.SetMessage(message)
	return r
}

// numberRule checks non-nil numeric values, including zero.
type numberRule struct {
	check func(float64) bool
	err   validation.Error
}

// Validate implements validation.Rule.
func (r numberRule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	f, err := toFloat(value)
	if err != nil {
		return validation.NewError("validation_number_type", "must be a number")
	}
	if !r.check(f) {
		return r.err
	}
	return nil
}

// Error returns a copy of the rule with a custom message.
func (r numberRule) Error(message string) numberRule {
	r.err = r.err.SetMessage(message)
	return r
}

func toFloat(value interface{}) (float64, error) {
	if f, err := validation.ToFloat(value); err == nil {
		return f, nil
	}
	if i, err := validation.ToInt(value); err == nil {
		return float64(i), nil
	}
	u, err := validation.ToUint(value)
	if err != nil {
		return 0, err
	}
	return float64(u), nil
}
