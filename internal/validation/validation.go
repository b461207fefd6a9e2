// Package validation registers the custom form validators with gin and
// turns validation errors into messages for the forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var errNoValidator = errors.New("the binding validator is not a go-playground validator")

// Register adds the custom validators to gin's validator:
//
//   - amount: a string that parses as a positive decimal number
//   - category: one of the expense categories
//   - notblank: not empty after trimming whitespace
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errNoValidator
	}

	// Report fields by their form name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})

	err := v.RegisterValidation("amount", amount)
	if err != nil {
		return err
	}

	err = v.RegisterValidation("category", category)
	if err != nil {
		return err
	}

	return v.RegisterValidation("notblank", validators.NotBlank)
}

func amount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive()
}

func category(fl validator.FieldLevel) bool {
	return models.ValidCategory(fl.Field().String())
}

// Messages maps the form field names to a message for each failed validation.
//
// Errors that are not validation errors are returned under the empty key.
func Messages(err error) map[string]string {
	messages := make(map[string]string)

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		messages[""] = err.Error()
		return messages
	}

	for _, e := range errs {
		if _, ok := messages[e.Field()]; ok {
			continue
		}
		messages[e.Field()] = Text(e)
	}

	return messages
}

// Text returns the message for a failed validation.
func Text(e validator.FieldError) string {
	switch e.Tag() {
	case "amount":
		return "Amount must be a positive number"
	case "category":
		return "Please select a valid category"
	case "datetime":
		return "Date must be in YYYY-MM-DD format"
	case "eqfield":
		return "Passwords must match"
	case "email":
		return "Invalid email address."
	case "required", "notblank":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", e.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
