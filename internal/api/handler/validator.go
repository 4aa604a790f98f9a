package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// formValidator wraps go-playground/validator so Echo can call
// c.Validate(form). Failures come back as a *domain.ValidationError keyed by
// form field name, ready to render beneath the offending inputs.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns a formValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *formValidator {
	v := validator.New()
	// Report fields under their form names (name, email, user_roles, ...)
	// so errors land next to the right input.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})
	return &formValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (fv *formValidator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ve := domain.NewValidationError()
			for _, fe := range verrs {
				ve.Add(fe.Field(), fieldMessage(fe))
			}
			return ve
		}
		return err
	}
	return nil
}

// fieldMessage converts a single failed rule into a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
