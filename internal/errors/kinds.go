package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FieldIssue is a single violated path together with a human-readable message.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError is raised by the validation gate when input does not conform to
// a declared schema. It carries every violated path, not just the first one.
type SchemaError struct {
	Issues []FieldIssue
}

// NewSchemaError builds a SchemaError from the given issues.
func NewSchemaError(issues ...FieldIssue) *SchemaError {
	return &SchemaError{Issues: issues}
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match schema failures against ErrInvalidInput.
func (e *SchemaError) Unwrap() error { return ErrInvalidInput }

// ModelValidationError is raised when an entity fails its persistence-level
// constraints right before it is written. Fields maps field name to message.
type ModelValidationError struct {
	Fields map[string]string
}

// NewModelValidationError builds a ModelValidationError.
func NewModelValidationError(fields map[string]string) *ModelValidationError {
	return &ModelValidationError{Fields: fields}
}

// SortedFields returns the field names in lexical order.
func (e *ModelValidationError) SortedFields() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ModelValidationError) Error() string {
	keys := e.SortedFields()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "model validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match model failures against ErrInvalidInput.
func (e *ModelValidationError) Unwrap() error { return ErrInvalidInput }

// InvalidIDError is raised when an identifier does not match the opaque-ID format.
type InvalidIDError struct {
	Path  string
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id format for %q: %q", e.Path, e.Value)
}

// Unwrap lets callers match malformed identifiers against ErrInvalidInput.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidInput }

// DuplicateKeyError is raised when a uniqueness constraint is violated.
type DuplicateKeyError struct {
	Field string
	Value any
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("duplicate key on %s", e.Field)
}

// Unwrap lets callers match duplicates against ErrConflict.
func (e *DuplicateKeyError) Unwrap() error { return ErrConflict }

// CredentialError is raised by token verification.
type CredentialError struct {
	Expired bool
	Err     error
}

func (e *CredentialError) Error() string {
	reason := "invalid token"
	if e.Expired {
		reason = "token expired"
	}
	if e.Err != nil {
		return reason + ": " + e.Err.Error()
	}
	return reason
}

// Unwrap returns the underlying verification error.
func (e *CredentialError) Unwrap() error { return e.Err }

// NotFoundError is raised when a required entity lookup yields nothing.
type NotFoundError struct {
	Resource string
}

// NewNotFoundError builds a NotFoundError for the named resource.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "Resource not found"
	}
	return e.Resource + " not found"
}

// Unwrap lets callers match missing entities against ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// APIError is a declared application failure carrying its own status and message.
type APIError struct {
	StatusCode int
	Message    string
}

// NewAPIError builds an APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// BadRequest returns a 400 APIError.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 APIError.
func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 APIError.
func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, message)
}

// Conflict returns a 409 APIError.
func Conflict(message string) *APIError {
	return NewAPIError(http.StatusConflict, message)
}

func (e *APIError) Error() string { return e.Message }

// TransportKind enumerates framework-level request failures.
type TransportKind int

const (
	// MalformedBody means the request body could not be parsed.
	MalformedBody TransportKind = iota + 1
	// UnmatchedRoute means no route matched the request.
	UnmatchedRoute
	// UncaughtInternal means a handler panicked.
	UncaughtInternal
)

// TransportError is a framework-level request failure.
type TransportError struct {
	Kind  TransportKind
	Err   error
	Stack string
}

func (e *TransportError) Error() string {
	var prefix string
	switch e.Kind {
	case MalformedBody:
		prefix = "malformed request body"
	case UnmatchedRoute:
		prefix = "route not found"
	default:
		prefix = "internal server error"
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error { return e.Err }
