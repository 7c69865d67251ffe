// Package validator holds field-level rules shared by the driver forms.
package validator

import "errors"

const (
	licenseLength       = 8
	licensePrefixLength = 3
)

var ErrInvalidFormat = errors.New("invalid format")

// FormatError carries the human readable reason of a rejected value.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// LicenseNumber returns s unchanged when it is three uppercase latin letters
// followed by five digits. Rules are checked in order and the first failure wins.
func LicenseNumber(s string) (string, error) {
	r := []rune(s)
	if len(r) != licenseLength {
		return "", &FormatError{Reason: "length must be 8 characters"}
	}
	for _, c := range r[:licensePrefixLength] {
		if c < 'A' || c > 'Z' {
			return "", &FormatError{Reason: "first 3 characters must be uppercase letters"}
		}
	}
	for _, c := range r[licensePrefixLength:] {
		if c < '0' || c > '9' {
			return "", &FormatError{Reason: "last 5 characters must be digits"}
		}
	}
	return s, nil
}
