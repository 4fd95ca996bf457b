package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

// BindJSON decodes the request body into dst. An empty body yields a root
// "Required" schema issue, a JSON type mismatch yields a schema issue at the
// offending path and syntactically invalid JSON yields a malformed body
// transport error. Unknown fields are ignored.
func BindJSON(c *gin.Context, dst any) error {
	mismatches, err := decodeBody(c, dst)
	if err != nil {
		return err
	}
	if len(mismatches) > 0 {
		return apperrors.NewSchemaError(mismatches...)
	}
	return nil
}

// Bind decodes the request body into t and validates it in the given mode.
// Type mismatches and rule violations are reported together, one issue per path.
func Bind(c *gin.Context, t Target, mode Mode) error {
	mismatches, err := decodeBody(c, t)
	if err != nil {
		return err
	}

	err = Validate(t, mode)
	if len(mismatches) == 0 {
		return err
	}
	if err == nil {
		return apperrors.NewSchemaError(mismatches...)
	}

	var schemaErr *apperrors.SchemaError
	if !apperrors.As(err, &schemaErr) {
		return err
	}
	return apperrors.NewSchemaError(mergeIssues(mismatches, schemaErr.Issues)...)
}

// decodeBody decodes the body into dst. Each mistyped top-level member is
// reported and dropped, then the body is decoded again so the remaining
// members still reach dst.
func decodeBody(c *gin.Context, dst any) ([]apperrors.FieldIssue, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, &apperrors.TransportError{Kind: apperrors.MalformedBody, Err: err}
	}

	var mismatches []apperrors.FieldIssue
	for {
		resetTarget(dst)

		err := binding.JSON.BindBody(body, dst)
		var typeErr *json.UnmarshalTypeError
		switch {
		case err == nil:
			return mismatches, nil
		case errors.Is(err, io.EOF):
			return nil, apperrors.NewSchemaError(apperrors.FieldIssue{Message: "Required"})
		case errors.As(err, &typeErr):
			mismatches = append(mismatches, apperrors.FieldIssue{
				Path:    typeErr.Field,
				Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), receivedKind(typeErr.Value)),
			})
			next, ok := dropMember(body, typeErr.Field)
			if !ok {
				return nil, apperrors.NewSchemaError(mismatches...)
			}
			body = next
		default:
			return nil, &apperrors.TransportError{Kind: apperrors.MalformedBody, Err: err}
		}
	}
}

func resetTarget(dst any) {
	v := reflect.ValueOf(dst)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

// dropMember removes the top-level member holding path from a JSON object.
// Member names match case-insensitively, as they do when decoding.
func dropMember(body []byte, path string) ([]byte, bool) {
	top, _, _ := strings.Cut(path, ".")
	if top == "" {
		return nil, false
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, false
	}

	dropped := false
	for name := range members {
		if strings.EqualFold(name, top) {
			delete(members, name)
			dropped = true
		}
	}
	if !dropped {
		return nil, false
	}

	out, err := json.Marshal(members)
	if err != nil {
		return nil, false
	}
	return out, true
}

// mergeIssues adds rule violations to the type mismatches, skipping paths
// already reported as mismatched, and sorts the result by path.
func mergeIssues(mismatches, violations []apperrors.FieldIssue) []apperrors.FieldIssue {
	merged := append([]apperrors.FieldIssue{}, mismatches...)
	for _, v := range violations {
		if !mismatchCovers(mismatches, v.Path) {
			merged = append(merged, v)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Path < merged[j].Path
	})
	return merged
}

func mismatchCovers(mismatches []apperrors.FieldIssue, path string) bool {
	for _, m := range mismatches {
		top, _, _ := strings.Cut(m.Path, ".")
		if path == m.Path || path == top || strings.HasPrefix(path, m.Path+".") {
			return true
		}
	}
	return false
}

// ParseObjectID checks raw against the 24 hex character identifier format.
// A mismatch is always an *InvalidIDError, never a generic schema failure.
func ParseObjectID(path, raw string) (bson.ObjectID, error) {
	if !objectIDRegex.MatchString(raw) {
		return bson.NilObjectID, &apperrors.InvalidIDError{Path: path, Value: raw}
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.NilObjectID, &apperrors.InvalidIDError{Path: path, Value: raw}
	}
	return id, nil
}

// Number is a JSON number that also accepts numeric strings such as "21".
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(f)
			return nil
		}
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(f)}
	}

	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(f)}
}

// Float64 returns the value as a float64.
func (n Number) Float64() float64 { return float64(n) }

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(Number(0)) {
		return "number"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func receivedKind(value string) string {
	switch {
	case value == "bool":
		return "boolean"
	case len(value) >= 6 && value[:6] == "number":
		return "number"
	case value == "":
		return "unknown"
	}
	return value
}
