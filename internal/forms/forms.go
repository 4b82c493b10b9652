// Package forms parses and validates the public submission forms. Each
// Parse function returns either a clean value or a map of field name to
// error messages; callers re-render the form when the map is non-empty.
package forms

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its validation messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Valid reports whether no field has messages.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// validate is shared by all forms; validator caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the form field name rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs struct validation and converts failures into Errors.
func check(input any) Errors {
	errs := Errors{}
	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("__all__", "The form could not be validated.")
		return errs
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

// message returns the human-readable text for a failed validation tag.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return "Enter a valid value."
	}
}

// field returns the trimmed value of a submitted form field.
func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}
