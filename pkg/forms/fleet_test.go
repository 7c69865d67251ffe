package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManufacturer_Clean(t *testing.T) {
	cleaned, err := Manufacturer{Name: " Toyota ", Country: "Japan"}.Clean()
	require.NoError(t, err)
	assert.Equal(t, Manufacturer{Name: "Toyota", Country: "Japan"}, cleaned)

	_, err = Manufacturer{Name: "   "}.Clean()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Fields.Has("name"))
	assert.True(t, verr.Fields.Has("country"))
}

func TestCar_Clean(t *testing.T) {
	data, err := Car{Model: "Corolla", Manufacturer: "3", Drivers: []string{"1", "2", "1"}}.Clean()
	require.NoError(t, err)
	assert.Equal(t, CarData{Model: "Corolla", ManufacturerID: 3, DriverIDs: []int64{1, 2}}, data)

	_, err = Car{Model: "Corolla", Manufacturer: "x", Drivers: []string{"1", "y"}}.Clean()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Select a valid choice.", verr.Fields.First("manufacturer"))
	assert.Equal(t, "Select a valid choice.", verr.Fields.First("drivers"))
}

func TestCar_Selected(t *testing.T) {
	f := Car{Drivers: []string{"4", "7"}}
	assert.True(t, f.Selected(7))
	assert.False(t, f.Selected(5))
}

func TestLogin_Clean(t *testing.T) {
	_, err := Login{Username: "x"}.Clean()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields.First("password"))
}

func TestValidationError_Message(t *testing.T) {
	errs := Errors{}
	errs.Add("b", "second")
	errs.Add("a", "first")
	assert.Equal(t, "validation failed; a: first; b: second", NewValidationError(errs).Error())
}
