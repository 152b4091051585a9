package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kbukum/inject/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator accumulates field errors from chained checks:
//
//	err := validation.New().
//	    Required("name", name).
//	    NotNil("factory", f).
//	    ValidateAs(errors.ErrCodeMissingArgument)
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failed check on field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the failed checks in the order they were made.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns a VALIDATION_FAILED error listing every failed check, or
// nil.
func (v *Validator) Validate() *errors.AppError {
	return v.ValidateAs(errors.ErrCodeValidationFailed)
}

// ValidateAs is Validate with a caller-chosen error code.
func (v *Validator) ValidateAs(code errors.ErrorCode) *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.errors))
	for i, e := range v.errors {
		parts[i] = e.String()
	}
	return errors.New(code, strings.Join(parts, "; ")).WithDetail("fields", v.errors)
}

// Required fails when value is empty or blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// NotNil fails when value is nil, including typed nil pointers, funcs, maps,
// slices, channels and interfaces.
func (v *Validator) NotNil(field string, value any) *Validator {
	if isNil(value) {
		v.AddError(field, "must not be nil")
	}
	return v
}

// OneOf fails when a non-empty value is not among allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom fails with message when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field.
func Required(field, value string) error {
	if err := New().Required(field, value).Validate(); err != nil {
		return err
	}
	return nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
