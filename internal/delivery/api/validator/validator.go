// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator implements echo.Validator. Failures are reported as ErrValidationFailed
// with a readable description of every rejected field.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator that names fields after their json tags.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// A blank value is accepted so that partial updates can clear the field.
	_ = validate.RegisterValidation("clearable_email", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" {
			return true
		}

		return validate.Var(value, "email") == nil
	})

	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	// max counts runes; max_bytes bounds the encoded length, which is what bcrypt limits.
	_ = validate.RegisterValidation("max_bytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}

		return len(fl.Field().String()) <= limit
	})

	return &Validator{validate: validate}
}

// Validate checks i against its validate tags.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, describe(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fieldErr validator.FieldError) string {
	field := fieldPath(fieldErr)
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "notblank":
		return fmt.Sprintf("field '%s' must not be blank", field)
	case "email", "clearable_email":
		return fmt.Sprintf("field '%s' must be a valid email address", field)
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("field '%s' must be at least %s characters long", field, param)
		}

		return fmt.Sprintf("field '%s' must be at least %s", field, param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("field '%s' must be at most %s characters long", field, param)
		}

		return fmt.Sprintf("field '%s' must be at most %s", field, param)
	case "max_bytes":
		return fmt.Sprintf("field '%s' must be at most %s bytes long", field, param)
	case "gt":
		return fmt.Sprintf("field '%s' must be greater than %s", field, param)
	case "datetime":
		return fmt.Sprintf("field '%s' must be a date formatted as %s", field, param)
	default:
		return fmt.Sprintf("field '%s' failed the '%s' check", field, fieldErr.Tag())
	}
}

// fieldPath drops the root struct name, so "CreateUserRequest.address.city_id" becomes "address.city_id".
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}

	return fieldErr.Field()
}
