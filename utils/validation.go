package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by the name clients send
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("dashboard_role", func(fl validator.FieldLevel) bool {
		_, ok := access.ParseRole(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("site_status", func(fl validator.FieldLevel) bool {
		return models.SiteStatus(fl.Field().String()).Valid()
	})
	return v
}

// ValidateStruct checks s against its validate tags. Rule violations come
// back as a *ValidationError keyed by JSON field name.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return NewValidationError(fieldErrs)
	}
	return err
}

// ValidationError lists the rule each request field broke
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError converts validator output into a ValidationError
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Message: "Validation failed", Fields: fields}
}

func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", field, bound(fe.Tag()), param)
		}
		return fmt.Sprintf("%s must be %s %s", field, bound(fe.Tag()), param)
	case "gte":
		return fmt.Sprintf("%s must not be below %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", field, param)
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", field, fe.Tag())
	case "dashboard_role":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(roleNames(), ", "))
	case "site_status":
		return field + " must be a known site status"
	}
	return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
}

func bound(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

func roleNames() []string {
	roles := access.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// IsValidationError reports whether err carries field errors
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationFields returns the field errors carried by err, if any
func GetValidationFields(err error) map[string]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}
