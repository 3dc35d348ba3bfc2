// Package schema declares request payloads per entity and the rules that
// accept them. Decoding is pure: nothing here touches storage.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request payloads; blog content is the largest field.
const maxBodyBytes = 4 << 20

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("url_optional", func(fl validator.FieldLevel) bool {
		return IsWebURL(fl.Field().String(), true)
	})
	return v
}

// IsWebURL reports whether raw is an absolute URL with scheme and host.
// allowEmpty accepts the empty string so optional links can be cleared.
func IsWebURL(raw string, allowEmpty bool) bool {
	if raw == "" {
		return allowEmpty
	}
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsSlug reports whether s is a lowercase URL slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidationError describes every rule a payload violated.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "Validation error"
	}
	return "Validation error: " + strings.Join(e.Issues, "; ")
}

func newValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Decode parses body into T and checks its rules. An empty body decodes as {}
// so required fields are reported instead of a parse failure.
func Decode[T any](body []byte) (*T, error) {
	out := new(T)
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return nil, decodeError(err)
	}
	if err := Check(out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeReader reads r to the end and decodes it like Decode.
func DecodeReader[T any](r io.Reader) (*T, error) {
	if r == nil {
		return Decode[T](nil)
	}
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, newValidationError("request body could not be read")
	}
	return Decode[T](body)
}

// Check runs the struct rules of v.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newValidationError(err.Error())
	}
	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, fe.Field()+" "+ruleText(fe))
	}
	return newValidationError(issues...)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return newValidationError(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeName(typeErr.Type)))
	}
	return newValidationError("request body must be a valid JSON object")
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
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
	}
	return "object"
}

func ruleText(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "slug":
		return "must contain only lowercase letters, numbers, and hyphens"
	case "url_optional", "url":
		return "must be a valid URL"
	case "dive":
		return "contains an invalid item"
	}
	return "failed the " + fe.Tag() + " rule"
}
