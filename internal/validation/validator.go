// Package validation checks request payloads and collects per-field
// messages that the API returns with status 422.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"simplepay/internal/models"
)

// Errors maps a request field to its validation messages.
type Errors map[string][]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	first := e[e.fields()[0]][0]
	if len(e) == 1 {
		return first
	}
	return fmt.Sprintf("%s (and %d more errors)", first, len(e)-1)
}

func (e Errors) fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Validator accumulates errors for checks that need more than struct tags.
type Validator struct {
	Errors Errors
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(Errors)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Merge copies the messages of err into v when err is an Errors value and
// returns err unchanged otherwise.
func (v *Validator) Merge(err error) error {
	errs, ok := err.(Errors)
	if !ok {
		return err
	}
	for field, messages := range errs {
		for _, m := range messages {
			v.AddError(field, m)
		}
	}
	return nil
}

// Err returns the collected errors, or nil when there are none.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

// Unique reports a field whose value already exists.
func (v *Validator) Unique(field string, taken bool) {
	v.Check(!taken, field, fmt.Sprintf("The %s has already been taken.", displayName(field)))
}

// Exists reports a reference to a row that does not exist.
func (v *Validator) Exists(field string, found bool) {
	v.Check(found, field, fmt.Sprintf("The selected %s is invalid.", displayName(field)))
}

// Document checks the number against the length of its document type.
// Only the seeded CPF and CNPJ types have a known format.
func (v *Validator) Document(field string, documentTypeID uint, number string) {
	if !onlyDigits(number) {
		v.AddError(field, fmt.Sprintf("The %s must contain only digits.", displayName(field)))
		return
	}
	switch documentTypeID {
	case models.DocumentTypeCPF:
		v.Check(len(number) == CPFLength, field, fmt.Sprintf("The %s must be %d digits.", displayName(field), CPFLength))
	case models.DocumentTypeCNPJ:
		v.Check(len(number) == CNPJLength, field, fmt.Sprintf("The %s must be %d digits.", displayName(field), CNPJLength))
	}
}

func onlyDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func displayName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
