// Package validation wraps go-playground/validator and turns its failures
// into a field → reason structure that handlers can return to the caller.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned when one or more fields fail validation.
type Errors struct {
	fields []FieldError
}

// Error implements error.
func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the machine-readable field → message mapping.
func (e *Errors) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for _, f := range e.fields {
		if _, exists := out[f.Field]; !exists {
			out[f.Field] = f.Message
		}
	}
	return out
}

// Details groups the first failure of each field for JSON responses.
func (e *Errors) Details() map[string]FieldError {
	out := make(map[string]FieldError, len(e.fields))
	for _, f := range e.fields {
		if _, exists := out[f.Field]; !exists {
			out[f.Field] = f
		}
	}
	return out
}

// Add appends a failure; used for rules that cannot be expressed as tags.
func (e *Errors) Add(field, rule, message string) {
	e.fields = append(e.fields, FieldError{Field: field, Rule: rule, Message: message})
}

// AsErrors extracts *Errors from err.
func AsErrors(err error) (*Errors, bool) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags. It returns nil or *Errors;
// any other failure (e.g. a non-struct argument) is returned as-is.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Errors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fe.Tag(), message(labelFor(s, fe), fe))
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "email":
		return "Invalid email address"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// labelFor prefers an explicit `label` tag and falls back to a humanised
// form of the json field name.
func labelFor(s any, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if label := strings.TrimSpace(sf.Tag.Get("label")); label != "" {
				return label
			}
		}
	}
	return humanize(fe.Field())
}

func humanize(name string) string {
	if name == "" {
		return "Value"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
