package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "valid", input: "TST12345"},
		{name: "valid new", input: "NEW12345"},
		{name: "empty", input: "", reason: "length must be 8 characters"},
		{name: "too short", input: "TST1234", reason: "length must be 8 characters"},
		{name: "too long", input: "TST123456", reason: "length must be 8 characters"},
		{name: "length checked first", input: "tst1", reason: "length must be 8 characters"},
		{name: "lowercase prefix", input: "tST12345", reason: "first 3 characters must be uppercase letters"},
		{name: "digit in prefix", input: "TS112345", reason: "first 3 characters must be uppercase letters"},
		{name: "non latin uppercase", input: "ÄBC12345", reason: "first 3 characters must be uppercase letters"},
		{name: "prefix checked before suffix", input: "ts1abcde", reason: "first 3 characters must be uppercase letters"},
		{name: "letter in suffix", input: "TST1234A", reason: "last 5 characters must be digits"},
		{name: "space in suffix", input: "TST 2345", reason: "last 5 characters must be digits"},
		{name: "non ascii digit", input: "TST1234٣", reason: "last 5 characters must be digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LicenseNumber(tt.input)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.input, got)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.reason, fe.Reason)
			assert.Empty(t, got)
		})
	}
}

func TestLicenseNumber_RejectsEveryWrongLength(t *testing.T) {
	for n := 0; n <= 16; n++ {
		if n == licenseLength {
			continue
		}
		_, err := LicenseNumber(strings.Repeat("A", n))
		assert.ErrorIs(t, err, ErrInvalidFormat, "length %d", n)
	}
}

func TestLicenseNumber_AcceptsWholeAlphabetAndDigits(t *testing.T) {
	for c := 'A'; c <= 'Z'; c++ {
		for d := '0'; d <= '9'; d++ {
			s := strings.Repeat(string(c), 3) + strings.Repeat(string(d), 5)
			_, err := LicenseNumber(s)
			assert.NoError(t, err, s)
		}
	}
}
