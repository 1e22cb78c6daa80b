package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{
		validate: validator.New(),
	}
	v.registerCustomTypes()
	return v
}

// Validate returns a single error describing every failed field.
func (v *Validator) Validate(i interface{}) error {
	errs := v.ValidateStructured(i)
	if errs == nil {
		return nil
	}

	messages := make([]string, 0, len(errs))
	for field, msg := range errs {
		messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// ValidateStructured returns field -> message, or nil when i is valid.
func (v *Validator) ValidateStructured(i interface{}) map[string]string {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_global"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		msg := fmt.Sprintf("failed validation on '%s'", e.Tag())
		switch e.Tag() {
		case "required":
			msg = "This field is required"
		case "email":
			msg = "Invalid email address"
		case "min":
			msg = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			msg = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			msg = fmt.Sprintf("Must be one of: %s", e.Param())
		}
		errs[e.Field()] = msg
	}
	return errs
}

func (v *Validator) registerCustomTypes() {
	// report fields by the name clients send
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := val.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
