package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

// NewValidator returns a validator that reports fields by their JSON names,
// so error messages match the wire contract rather than Go identifiers.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts a validator failure into a client-facing
// ValidationError with an explanatory message for the first offending field.
func validationError(err error) *appErrors.Error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	first := fieldErrs[0]
	var msg string
	switch first.Tag() {
	case "required":
		msg = fmt.Sprintf("missing required field: %s", first.Field())
	case "oneof":
		msg = fmt.Sprintf("invalid value for field %s: must be one of %s", first.Field(), strings.ReplaceAll(first.Param(), " ", ", "))
	case "datetime":
		msg = fmt.Sprintf("invalid value for field %s: expected date in %s format", first.Field(), first.Param())
	default:
		msg = fmt.Sprintf("invalid value for field %s", first.Field())
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
}
