package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to its ordered violation messages.
// A nil FieldErrors means the value is valid.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Fields returns the offending field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (fe FieldErrors) String() string {
	parts := make([]string, 0, len(fe))
	for _, field := range fe.Fields() {
		parts = append(parts, field+" "+strings.Join(fe[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// Defaulter is implemented by form inputs that fill omitted optional fields.
type Defaulter interface {
	ApplyDefaults()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks v against its struct tags. It never panics on a shape
// mismatch; the outcome is reported through the returned FieldErrors.
func Validate(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": {"must be an object"}}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// ValidateInput applies form defaults, then validates. The defaulted value is
// returned so callers submit exactly what was checked.
func ValidateInput[T any](in T) (T, FieldErrors) {
	if d, ok := any(&in).(Defaulter); ok {
		d.ApplyDefaults()
	}
	return in, Validate(in)
}

// ValidateEach validates every element, keying failures as "[i].field".
func ValidateEach[T any](items []T) FieldErrors {
	var out FieldErrors
	for i, item := range items {
		for field, msgs := range Validate(item) {
			if out == nil {
				out = FieldErrors{}
			}
			key := fmt.Sprintf("[%d].%s", i, field)
			out[key] = append(out[key], msgs...)
		}
	}
	return out
}

// Required reports a single "is required" error when value is blank.
func Required(field, value string) FieldErrors {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return FieldErrors{field: {"is required"}}
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		if isString {
			return fmt.Sprintf("must be exactly %s characters", fe.Param())
		}
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return "must be a non-negative number"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return "must be a positive number"
		}
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return "must be one of {" + strings.Join(strings.Fields(fe.Param()), ", ") + "}"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return "must be a date formatted as YYYY-MM-DD"
		}
		return "must be a valid date"
	case "alpha":
		return "must contain only letters"
	case "uppercase":
		return "must be upper-case"
	default:
		return "is invalid"
	}
}
