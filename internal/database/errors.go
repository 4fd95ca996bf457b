package database

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
)

const duplicateKeyCode = 11000

var (
	dupKeyFieldRegex = regexp.MustCompile(`dup key: \{\s*"?([^":\s]+)"?\s*:`)
	dupIndexRegex    = regexp.MustCompile(`index: (\S+)`)
)

// TranslateError converts driver errors into domain failures. A duplicate key
// becomes *DuplicateKeyError, a missing document becomes notFound (when non-nil)
// and anything else is returned unchanged.
func TranslateError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments) && notFound != nil:
		return notFound
	case mongo.IsDuplicateKeyError(err):
		field, value := DuplicateKeyField(err)
		return &apperrors.DuplicateKeyError{Field: field, Value: value}
	default:
		return err
	}
}

// DuplicateKeyField extracts the offending field and value of a duplicate key
// error. It prefers the server supplied keyValue document and falls back to
// parsing the error message.
func DuplicateKeyField(err error) (string, any) {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code != duplicateKeyCode {
				continue
			}
			if field, value, ok := keyValueFromRaw(we.Raw); ok {
				return field, value
			}
			return fieldFromMessage(we.Message), nil
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == duplicateKeyCode {
		if field, value, ok := keyValueFromRaw(cmdErr.Raw); ok {
			return field, value
		}
		return fieldFromMessage(cmdErr.Message), nil
	}

	return fieldFromMessage(err.Error()), nil
}

func keyValueFromRaw(raw bson.Raw) (string, any, bool) {
	if len(raw) == 0 {
		return "", nil, false
	}
	val, err := raw.LookupErr("keyValue")
	if err != nil {
		return "", nil, false
	}
	doc, ok := val.DocumentOK()
	if !ok {
		return "", nil, false
	}
	elems, err := doc.Elements()
	if err != nil || len(elems) == 0 {
		return "", nil, false
	}
	if s, ok := elems[0].Value().StringValueOK(); ok {
		return elems[0].Key(), s, true
	}
	return elems[0].Key(), elems[0].Value().String(), true
}

func fieldFromMessage(message string) string {
	if m := dupKeyFieldRegex.FindStringSubmatch(message); len(m) == 2 {
		return m[1]
	}
	if m := dupIndexRegex.FindStringSubmatch(message); len(m) == 2 {
		// index names look like email_1 or sku_1
		name := m[1]
		if i := strings.LastIndex(name, "_"); i > 0 {
			return name[:i]
		}
		return name
	}
	return ""
}
