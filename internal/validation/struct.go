package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Let numeric tags such as gt=0 apply to money amounts.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// Amounts may not carry more precision than the balance columns.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		field := reflect.Indirect(fl.Parent()).FieldByName(fl.StructFieldName())
		d, ok := field.Interface().(decimal.Decimal)
		return ok && IsMoney(d)
	})

	v.RegisterAlias("password", fmt.Sprintf("min=%d,max=%d", MinPasswordLength, MaxPasswordLength))
	v.RegisterAlias("name", fmt.Sprintf("max=%d", MaxNameLength))
	v.RegisterAlias("description", fmt.Sprintf("max=%d", MaxDescriptionLength))

	return v
}

// Struct validates s using its `validate` tags. It returns Errors when a
// rule fails.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	errs := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs[fe.Field()] = append(errs[fe.Field()], message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	name := displayName(fe.Field())
	// Aliases report their own tag; the message follows the rule that failed.
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", name, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", name, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", name, fe.Param())
	case "nefield":
		return fmt.Sprintf("The %s and %s must be different.", name, displayName(toSnake(fe.Param())))
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", name)
	case "money":
		return fmt.Sprintf("The %s may not have more than %d decimal places.", name, MoneyDecimalPlaces)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// toSnake turns a Go field name such as PayerID into payer_id.
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prev >= 'a' && prev <= 'z' || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
