package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// validate checks request DTOs before they are mapped to domain types.
// Field errors are reported with their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Dates validate as their wire string, or as absent when zero.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(openapi_types.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.String()
	}, openapi_types.Date{})

	// Money validates as its exact decimal string.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.String()
	}, decimal.Decimal{})

	if err := v.RegisterValidation("money", isMoney); err != nil {
		panic(err)
	}
	return v
}

// isMoney accepts non-negative amounts with at most two decimal places.
func isMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Round(2))
}

// validationMessage turns the first field error into a readable sentence.
func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Errorf("%s must be exactly %s characters", field, fe.Param())
	case "alpha":
		return fmt.Errorf("%s must contain only letters", field)
	case "money":
		return fmt.Errorf("%s must be a non-negative amount with at most two decimal places", field)
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
