package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiservice/pkg/validator"
)

func validDriverCreation() DriverCreation {
	return DriverCreation{
		Username:      "test_username",
		Password1:     "1qazcde3",
		Password2:     "1qazcde3",
		FirstName:     "test_first_name",
		LastName:      "test_last_name",
		LicenseNumber: "TST12345",
	}
}

func TestDriverCreation_ValidCleansToSubmittedData(t *testing.T) {
	form := validDriverCreation()

	cleaned, err := form.Clean()
	require.NoError(t, err)
	assert.Equal(t, form, cleaned)
}

func TestDriverCreation_PasswordMismatch(t *testing.T) {
	form := validDriverCreation()
	form.Password2 = "1qazcde4"

	_, err := form.Clean()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "The two password fields didn't match.", verr.Fields.First("password2"))
	assert.False(t, verr.Fields.Has("license_number"))
}

func TestDriverCreation_LicenseReasonIsFieldScoped(t *testing.T) {
	tests := []struct {
		license string
		reason  string
	}{
		{"TST1234", "length must be 8 characters"},
		{"tst12345", "first 3 characters must be uppercase letters"},
		{"TSTA2345", "last 5 characters must be digits"},
	}
	for _, tt := range tests {
		t.Run(tt.license, func(t *testing.T) {
			form := validDriverCreation()
			form.LicenseNumber = tt.license

			_, err := form.Clean()
			require.Error(t, err)
			assert.ErrorIs(t, err, validator.ErrInvalidFormat)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{tt.reason}, verr.Fields["license_number"])
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestDriverCreation_RequiredFields(t *testing.T) {
	_, err := DriverCreation{}.Clean()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, f := range []string{"username", "password1", "password2", "license_number"} {
		assert.Equal(t, "This field is required.", verr.Fields.First(f), f)
	}
	assert.False(t, verr.Fields.Has("first_name"))
	assert.False(t, verr.Fields.Has("last_name"))
}

func TestDriverCreation_UsernameCharset(t *testing.T) {
	form := validDriverCreation()
	form.Username = "bad name!"

	_, err := form.Clean()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields.First("username"), "Enter a valid username")
}

func TestDriverCreation_WeakPassword(t *testing.T) {
	form := validDriverCreation()
	form.Password1 = "1234"
	form.Password2 = "1234"

	_, err := form.Clean()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"This password is too short. It must contain at least 8 characters.",
		"This password is entirely numeric.",
	}, verr.Fields["password2"])
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestDriverCreation_TrimsTextFields(t *testing.T) {
	form := validDriverCreation()
	form.Username = "  test_username "
	form.LicenseNumber = " TST12345 "

	cleaned, err := form.Clean()
	require.NoError(t, err)
	assert.Equal(t, "test_username", cleaned.Username)
	assert.Equal(t, "TST12345", cleaned.LicenseNumber)
}

func TestDriverLicenseUpdate(t *testing.T) {
	cleaned, err := DriverLicenseUpdate{LicenseNumber: "NEW12345"}.Clean()
	require.NoError(t, err)
	assert.Equal(t, "NEW12345", cleaned.LicenseNumber)

	_, err = DriverLicenseUpdate{LicenseNumber: "NEW1234"}.Clean()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "length must be 8 characters", verr.Fields.First("license_number"))

	_, err = DriverLicenseUpdate{}.Clean()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields.First("license_number"))
}
