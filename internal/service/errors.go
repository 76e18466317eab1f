package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("cannot find restaurant")

// ValidationError lists the wire names of required fields that were missing
// or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts a validator failure into a ValidationError. Any
// other error is returned unchanged.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		// drop the leading struct type name
		_, field, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			field = fe.Field()
		}
		fields = append(fields, field)
	}

	return &ValidationError{Fields: fields}
}
