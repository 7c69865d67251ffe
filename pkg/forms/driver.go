package forms

import (
	"strings"
	"unicode"

	"taxiservice/pkg/validator"
)

const minPasswordLength = 8

type DriverCreation struct {
	Username      string `form:"username" validate:"required,max=150,username"`
	Password1     string `form:"password1" validate:"required"`
	Password2     string `form:"password2" validate:"required"`
	FirstName     string `form:"first_name" validate:"max=150"`
	LastName      string `form:"last_name" validate:"max=150"`
	LicenseNumber string `form:"license_number" validate:"required"`
}

// Clean returns the normalized form. Passwords are compared byte for byte and
// never trimmed.
func (f DriverCreation) Clean() (DriverCreation, error) {
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := Errors{}
	collect(f, errs)

	var causes []error
	if !errs.Has("password1") && !errs.Has("password2") {
		if f.Password1 != f.Password2 {
			errs.Add("password2", "The two password fields didn't match.")
			causes = append(causes, ErrPasswordMismatch)
		} else {
			for _, msg := range passwordProblems(f.Password2, f.Username) {
				errs.Add("password2", msg)
			}
		}
	}

	if !errs.Has("license_number") {
		if err := cleanLicense(f.LicenseNumber, errs); err != nil {
			causes = append(causes, err)
		}
	}

	if errs.Any() {
		return DriverCreation{}, NewValidationError(errs, causes...)
	}
	return f, nil
}

type DriverLicenseUpdate struct {
	LicenseNumber string `form:"license_number" validate:"required"`
}

func (f DriverLicenseUpdate) Clean() (DriverLicenseUpdate, error) {
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := Errors{}
	collect(f, errs)

	var causes []error
	if !errs.Has("license_number") {
		if err := cleanLicense(f.LicenseNumber, errs); err != nil {
			causes = append(causes, err)
		}
	}

	if errs.Any() {
		return DriverLicenseUpdate{}, NewValidationError(errs, causes...)
	}
	return f, nil
}

func cleanLicense(value string, errs Errors) error {
	if _, err := validator.LicenseNumber(value); err != nil {
		errs.Add("license_number", err.Error())
		return err
	}
	return nil
}

func passwordProblems(password, username string) []string {
	var out []string
	if len([]rune(password)) < minPasswordLength {
		out = append(out, "This password is too short. It must contain at least 8 characters.")
	}
	if isNumeric(password) {
		out = append(out, "This password is entirely numeric.")
	}
	if username != "" && strings.EqualFold(password, username) {
		out = append(out, "The password is too similar to the username.")
	}
	return out
}

func isNumeric(s string) bool {
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
