package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormValidator checks request forms against their `validate` tags and
// reports failures under the json field names.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return &FormValidator{validate: validate}
}

func (v *FormValidator) Validate(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	validationErr := NewValidationError("form validation error")
	for _, fieldErr := range fieldErrs {
		validationErr = validationErr.Add(fieldErr.Field(), fieldMessage(fieldErr))
	}

	return validationErr
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "value is required"
	case "uuid", "uuid4":
		return "value is not a valid uuid"
	default:
		return "value failed the '" + fieldErr.Tag() + "' rule"
	}
}
