package util

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors is the field -> messages map returned to the client on
// validation failure.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields under their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// alphanumeric plus dash/underscore, the original username rule
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	return v
}

// ValidateStruct runs the validate tags of a request struct and folds
// the failures into a FieldErrors map.
func ValidateStruct(s interface{}) FieldErrors {
	fields := FieldErrors{}

	err := validate.Struct(s)
	if err == nil {
		return fields
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields.Add("_", err.Error())
		return fields
	}

	for _, fe := range errs {
		fields.Add(fe.Field(), messageFor(fe))
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", fe.Field())
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", fe.Field())
	case "username":
		return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", fe.Field())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
