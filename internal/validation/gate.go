package validation

import (
	"sort"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

// Target is implemented by request inputs that validate against a Schema mode.
type Target interface {
	ValidateMode(mode Mode) error
}

// Normalizer is implemented by inputs that trim, case-fold or default their
// values before validation.
type Normalizer interface {
	Normalize(mode Mode)
}

// Result is the outcome of SafeValidate.
type Result struct {
	Valid  bool
	Issues []apperrors.FieldIssue
}

// Validate normalizes and validates t, returning a *SchemaError listing every
// violated path. Non-validation failures of the rules engine are returned as is.
func Validate(t Target, mode Mode) error {
	if n, ok := t.(Normalizer); ok {
		n.Normalize(mode)
	}

	err := t.ValidateMode(mode)
	if err == nil {
		return nil
	}

	issues, internal := Issues(err)
	if internal != nil {
		return internal
	}
	return apperrors.NewSchemaError(issues...)
}

// SafeValidate is the non-throwing variant of Validate.
func SafeValidate(t Target, mode Mode) Result {
	err := Validate(t, mode)
	if err == nil {
		return Result{Valid: true}
	}

	var schemaErr *apperrors.SchemaError
	if apperrors.As(err, &schemaErr) {
		return Result{Issues: schemaErr.Issues}
	}
	return Result{Issues: []apperrors.FieldIssue{{Message: err.Error()}}}
}

// Issues flattens a rules engine error into field issues sorted by path.
// Nested struct and slice errors are joined with "." (dimensions.length, images.0).
func Issues(err error) ([]apperrors.FieldIssue, error) {
	var issues []apperrors.FieldIssue
	if internal := collect("", err, &issues); internal != nil {
		return nil, internal
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues, nil
}

func collect(prefix string, err error, issues *[]apperrors.FieldIssue) error {
	switch e := err.(type) {
	case nil:
		return nil
	case validation.InternalError:
		return e
	case validation.Errors:
		for key, fieldErr := range e {
			if internal := collect(joinPath(prefix, key), fieldErr, issues); internal != nil {
				return internal
			}
		}
		return nil
	default:
		*issues = append(*issues, apperrors.FieldIssue{Path: prefix, Message: err.Error()})
		return nil
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.Join([]string{prefix, key}, ".")
}

// ModelError converts a rules engine error raised by a domain model into a
// *ModelValidationError keyed by field path.
func ModelError(err error) error {
	if err == nil {
		return nil
	}
	issues, internal := Issues(err)
	if internal != nil {
		return internal
	}
	fields := make(map[string]string, len(issues))
	for _, issue := range issues {
		fields[issue.Path] = issue.Message
	}
	return apperrors.NewModelValidationError(fields)
}
