package httputil

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

// Source labels reported in failure responses.
const (
	SourceSchema      = "SchemaValidationError"
	SourceModel       = "ModelValidationError"
	SourceInvalidID   = "InvalidIDError"
	SourceDuplicate   = "DuplicateKeyError"
	SourceExpired     = "TokenExpiredError"
	SourceInvalidAuth = "InvalidTokenError"
	SourceNotFound    = "NotFoundError"
	SourceAPI         = "APIError"
	SourceTransport   = "TransportError"
	SourceGeneric     = "Error"
)

// ErrorResponse is the body of every failure response.
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Source  string                 `json:"source"`
	Errors  []apperrors.FieldIssue `json:"errors"`
	Stack   string                 `json:"stack,omitempty"`
}

// Classification is the outcome of mapping an error to the wire shape.
type Classification struct {
	StatusCode int
	Source     string
	Message    string
	Errors     []apperrors.FieldIssue
}

// Classify maps err to a status code, source label, message and field errors.
// The first matching kind wins. development only changes the validation message.
func Classify(err error, development bool) Classification {
	validationMessage := "Validation Error"
	if development {
		validationMessage = "Validation failed"
	}

	var (
		schemaErr    *apperrors.SchemaError
		modelErr     *apperrors.ModelValidationError
		idErr        *apperrors.InvalidIDError
		dupErr       *apperrors.DuplicateKeyError
		credErr      *apperrors.CredentialError
		notFoundErr  *apperrors.NotFoundError
		apiErr       *apperrors.APIError
		transportErr *apperrors.TransportError
	)

	switch {
	case apperrors.As(err, &schemaErr):
		issues := make([]apperrors.FieldIssue, 0, len(schemaErr.Issues))
		for _, issue := range schemaErr.Issues {
			if issue.Path == "" {
				issue.Path = "root"
			}
			issues = append(issues, issue)
		}
		return Classification{http.StatusBadRequest, SourceSchema, validationMessage, issues}

	case apperrors.As(err, &modelErr):
		fields := modelErr.SortedFields()
		issues := make([]apperrors.FieldIssue, 0, len(fields))
		for _, field := range fields {
			issues = append(issues, apperrors.FieldIssue{Path: field, Message: modelErr.Fields[field]})
		}
		return Classification{http.StatusBadRequest, SourceModel, validationMessage, issues}

	case apperrors.As(err, &idErr):
		return Classification{
			http.StatusBadRequest, SourceInvalidID, "Invalid ID format",
			[]apperrors.FieldIssue{{Path: idErr.Path, Message: "Invalid ID format provided"}},
		}

	case apperrors.As(err, &dupErr):
		field := dupErr.Field
		message := "Field already exists"
		if field != "" {
			message = field + " already exists"
		}
		return Classification{
			http.StatusConflict, SourceDuplicate, "Duplicate entry",
			[]apperrors.FieldIssue{{Path: field, Message: message}},
		}

	case apperrors.As(err, &credErr) && credErr.Expired:
		return Classification{
			http.StatusUnauthorized, SourceExpired, "Session Expired",
			[]apperrors.FieldIssue{{Message: "Your session has expired. Please log in again to continue."}},
		}

	case apperrors.As(err, &credErr):
		return Classification{
			http.StatusUnauthorized, SourceInvalidAuth, "Invalid Token",
			[]apperrors.FieldIssue{{Message: "Your token is invalid. Please log in again to continue."}},
		}

	case apperrors.As(err, &notFoundErr):
		return Classification{
			http.StatusNotFound, SourceNotFound, notFoundErr.Error(),
			[]apperrors.FieldIssue{{Message: notFoundErr.Error()}},
		}

	case apperrors.As(err, &apiErr):
		return Classification{
			apiErr.StatusCode, SourceAPI, apiErr.Message,
			[]apperrors.FieldIssue{{Message: apiErr.Message}},
		}

	case apperrors.As(err, &transportErr):
		return classifyTransport(transportErr)
	}

	return classifySentinel(err)
}

func classifyTransport(err *apperrors.TransportError) Classification {
	var c Classification
	switch err.Kind {
	case apperrors.MalformedBody:
		c = Classification{StatusCode: http.StatusBadRequest, Message: "Invalid request body"}
	case apperrors.UnmatchedRoute:
		c = Classification{StatusCode: http.StatusNotFound, Message: "API not found"}
	default:
		c = Classification{StatusCode: http.StatusInternalServerError, Message: "Internal server error"}
	}
	c.Source = SourceTransport
	c.Errors = []apperrors.FieldIssue{{Message: c.Message}}
	return c
}

func classifySentinel(err error) Classification {
	var statusCode int
	var message string

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found"
	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with existing data"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Authentication is required"
	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "You don't have permission to access this resource"
	case apperrors.Is(err, apperrors.ErrLocked):
		statusCode = http.StatusLocked
		message = "Account is locked due to too many failed authentication attempts"
	default:
		statusCode = http.StatusInternalServerError
		message = err.Error()
		if message == "" {
			message = "Something went wrong"
		}
	}

	return Classification{
		StatusCode: statusCode,
		Source:     SourceGeneric,
		Message:    message,
		Errors:     []apperrors.FieldIssue{{Message: message}},
	}
}

// Stack returns the diagnostic trace of err: the captured goroutine stack for
// recovered panics, otherwise the unwrapped error chain one message per line.
func Stack(err error) string {
	var transportErr *apperrors.TransportError
	if apperrors.As(err, &transportErr) && transportErr.Stack != "" {
		return transportErr.Stack
	}

	var lines []string
	for e := err; e != nil; e = apperrors.Unwrap(e) {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// ErrorNormalizer converts failures into the failure response and logs them
// to the structured sink and the console stream.
type ErrorNormalizer struct {
	env     string
	logger  *slog.Logger
	console zerolog.Logger
}

// NewErrorNormalizer creates an ErrorNormalizer for the given environment.
func NewErrorNormalizer(env string, logger *slog.Logger, console zerolog.Logger) *ErrorNormalizer {
	return &ErrorNormalizer{env: env, logger: logger, console: console}
}

func (n *ErrorNormalizer) development() bool { return n.env == "development" }

func (n *ErrorNormalizer) production() bool { return n.env == "production" }

// Normalize classifies err, logs it and returns the status code and body.
func (n *ErrorNormalizer) Normalize(c *gin.Context, err error) (int, ErrorResponse) {
	classification := Classify(err, n.development())

	resp := ErrorResponse{
		Success: false,
		Message: classification.Message,
		Source:  classification.Source,
		Errors:  classification.Errors,
	}
	if !n.production() {
		resp.Stack = Stack(err)
	}

	n.log(c, err, classification, resp.Stack)
	return classification.StatusCode, resp
}

// Render writes the failure response for err.
func (n *ErrorNormalizer) Render(c *gin.Context, err error) {
	statusCode, resp := n.Normalize(c, err)
	c.AbortWithStatusJSON(statusCode, resp)
}

func (n *ErrorNormalizer) log(c *gin.Context, err error, cl Classification, stack string) {
	var schemaErr *apperrors.SchemaError
	if n.development() && apperrors.As(err, &schemaErr) {
		for i, issue := range schemaErr.Issues {
			n.console.Warn().
				Int("index", i+1).
				Str("field", issue.Path).
				Str("issue", issue.Message).
				Msg("validation issue")
		}
	}

	method, path, fullURL := requestInfo(c)

	level := slog.LevelWarn
	consoleEvent := n.console.Warn()
	if cl.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
		consoleEvent = n.console.Error()
	}

	if n.logger != nil {
		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.String("url", fullURL),
			slog.String("source", cl.Source),
			slog.String("error", err.Error()),
			slog.Int("status_code", cl.StatusCode),
		}
		if stack != "" {
			attrs = append(attrs, slog.String("stack", stack))
		}
		ctx := context.Background()
		if c.Request != nil {
			ctx = c.Request.Context()
		}
		n.logger.LogAttrs(ctx, level, "request failed", attrs...)
	}

	consoleEvent.
		Str("method", method).
		Str("path", path).
		Str("source", cl.Source).
		Int("status", cl.StatusCode).
		Msg(err.Error())
}

func requestInfo(c *gin.Context) (method, path, fullURL string) {
	if c.Request == nil {
		return "", "", ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return c.Request.Method, c.Request.URL.Path, scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}

// ErrorRenderer renders the last error recorded on the context once the rest
// of the chain has run, unless a response was already written.
func ErrorRenderer(n *ErrorNormalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		n.Render(c, c.Errors.Last().Err)
	}
}
