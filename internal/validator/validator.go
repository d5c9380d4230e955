package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the project's custom rules
// registered.
type Validator struct {
	validate *validator.Validate
}

// ValidationError carries the per-field violations of one request.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, msg := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// First returns one violated field and its message, for clients that only
// surface a single error.
func (e *ValidationError) First() (string, string) {
	for field, msg := range e.Errors {
		return field, msg
	}
	return "", ""
}

func New() *Validator {
	v := validator.New()
	registerCustomRules(v)
	return &Validator{validate: v}
}

// Validate checks struct tags and returns a *ValidationError on failure.
func (v *Validator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errors := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Errors: errors}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "is-lead-status":
		return "is not a valid lead status"
	case "is-billing-tier":
		return "is not a valid billing tier"
	case "is-cep":
		return "must be a CEP with 5 to 9 characters"
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}
