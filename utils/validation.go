package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// messages refer to fields by their wire name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"name", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	err := v.RegisterValidation("minlength", minUtf16Length)
	if err != nil {
		panic(fmt.Errorf("registering minlength rule: %w", err))
	}

	return v
}

// minUtf16Length counts UTF-16 code units the way browser and JavaScript clients
// measure string length, so a character outside the BMP counts twice.
func minUtf16Length(fl validator.FieldLevel) bool {
	minimum, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Errorf("invalid minlength parameter %q: %w", fl.Param(), err))
	}

	units := 0
	for _, r := range fl.Field().String() {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}

	return units >= minimum
}

// ValidateDto validates s against its `validate` tags and returns a bad request
// error carrying the message of the first violated rule.
func ValidateDto(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return BadRequest(describeFieldError(validationErrors[0]))
	}

	return fmt.Errorf("validating %T: %w", s, err)
}

func describeFieldError(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "minlength":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "numeric":
		return field + " must be a number"
	case "len":
		return fmt.Sprintf("%s length must be %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
