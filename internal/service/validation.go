package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/go-playground/validator/v10"
)

// Validator checks request payloads and reports the first failing field
// as a *model.ValidationError named after its JSON key.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return model.NewValidationError(fe.Field(), reason(fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("failed to validate payload: %w", err)
}

// Email validates a single address under the field name "email".
func (v *Validator) Email(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return model.NewValidationError("email", reason(fieldErrs[0].Tag(), fieldErrs[0].Param()))
		}
		return fmt.Errorf("failed to validate email: %w", err)
	}
	return nil
}

func reason(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be greater than or equal to " + param
	case "max", "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of [" + strings.Join(strings.Fields(param), ", ") + "]"
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}
