// Package forms cleans user submitted data before it reaches the services.
// Failures are collected per field so pages can re-render next to the input.
package forms

import (
	"errors"
	"sort"
	"strings"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// NonField collects messages that do not belong to a single input.
const NonField = "__all__"

type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// ValidationError is returned when a form does not clean. Nothing has been
// persisted when a caller sees it.
type ValidationError struct {
	Fields Errors
	causes []error
}

func NewValidationError(fields Errors, causes ...error) *ValidationError {
	return &ValidationError{Fields: fields, causes: causes}
}

func FieldError(field, msg string, causes ...error) *ValidationError {
	errs := Errors{}
	errs.Add(field, msg)
	return NewValidationError(errs, causes...)
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		b.WriteString("; ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields[f], " "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return e.causes
}
