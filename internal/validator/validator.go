// Package validator provides a Validator type for accumulating field-level
// validation errors. Struct-tag rules are evaluated with go-playground/validator
// and reported under the field's JSON name.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// rules is shared by every Validator; playground.Validate caches struct
// metadata and is safe for concurrent use.
var rules = newRules()

func newRules() *playground.Validate {
	v := playground.New()

	// Report fields by their JSON key so messages line up with the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
	tags   map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{
		Errors: make(map[string]string),
		tags:   make(map[string]string),
	}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(input.Name != "", "name", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct evaluates the `validate` tags on s and records one error per
// failing field.
func (v *Validator) Struct(s any) {
	err := rules.Struct(s)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		v.AddError("_", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		if _, exists := v.tags[fe.Field()]; !exists {
			v.tags[fe.Field()] = fe.Tag()
		}
		v.AddError(fe.Field(), message(fe))
	}
}

// Failed reports whether key failed on the given rule tag. An empty tag
// matches any failure on key.
func (v *Validator) Failed(key, tag string) bool {
	if _, exists := v.Errors[key]; !exists {
		return false
	}
	return tag == "" || v.tags[key] == tag
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "ltefield":
		return fmt.Sprintf("must not be greater than %s", lowerFirst(fe.Param()))
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
