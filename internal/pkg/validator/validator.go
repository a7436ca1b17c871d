package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind classifies a form validation failure.
type Kind string

const (
	MissingRequiredField Kind = "MissingRequiredField"
	InvalidNumericValue  Kind = "InvalidNumericValue"
	EmptySelection       Kind = "EmptySelection"
	InvalidValue         Kind = "InvalidValue"
)

type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is a set of field failures; a non-empty value is returned as an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) Add(field string, kind Kind, message string) {
	*e = append(*e, FieldError{Field: field, Kind: kind, Message: message})
}

// Err returns nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Has(kind Kind) bool {
	for _, fe := range e {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// AsErrors unwraps validation errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Validate checks struct tags and maps failures onto the form error taxonomy.
func Validate(v interface{}) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Kind: InvalidValue, Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Kind:    kindFor(fe),
			Message: messageFor(fe),
		})
	}
	return out
}

func kindFor(fe validator.FieldError) Kind {
	isCollection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required":
		if isCollection {
			return EmptySelection
		}
		return MissingRequiredField
	case "min":
		if isCollection {
			return EmptySelection
		}
		if fe.Kind() == reflect.String {
			return MissingRequiredField
		}
		return InvalidNumericValue
	case "max":
		if fe.Kind() == reflect.String {
			return InvalidValue
		}
		return InvalidNumericValue
	case "gt", "gte", "lt", "lte", "ne", "gtefield", "ltefield", "numeric", "number":
		return InvalidNumericValue
	}
	return InvalidValue
}

func messageFor(fe validator.FieldError) string {
	switch kindFor(fe) {
	case MissingRequiredField:
		return "is required"
	case EmptySelection:
		return "select at least one item"
	case InvalidNumericValue:
		if fe.Param() != "" {
			return fmt.Sprintf("must be a number (%s %s)", fe.Tag(), fe.Param())
		}
		return "must be a number"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed %s", fe.Tag())
}

// Amount records an InvalidNumericValue failure unless d is a non-negative
// amount with at most two decimal places.
func (e *Errors) Amount(field string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		e.Add(field, InvalidNumericValue, "must not be negative")
	case !d.Equal(d.Round(2)):
		e.Add(field, InvalidNumericValue, "must have at most two decimal places")
	}
}

// FromBindError turns a JSON decoding failure on a numeric field into an
// InvalidNumericValue error. Other decoding failures are not recognized.
func FromBindError(err error) (Errors, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Type != nil && isNumeric(typeErr.Type.Kind()) {
		return Errors{{Field: typeErr.Field, Kind: InvalidNumericValue, Message: "must be a number"}}, true
	}
	if err != nil && strings.Contains(err.Error(), "to decimal") {
		return Errors{{Kind: InvalidNumericValue, Message: "must be a number"}}, true
	}
	return nil, false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
