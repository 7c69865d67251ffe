package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/models"
)

func TestManufacturerService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.Manufacturer().Create(ctx, forms.Manufacturer{Name: " Toyota ", Country: "Japan"})
	require.NoError(t, err)
	assert.Equal(t, "Toyota", m.Name)

	updated, err := f.svc.Manufacturer().Update(ctx, m.ID, forms.Manufacturer{Name: "Toyota Motor", Country: "Japan"})
	require.NoError(t, err)
	assert.Equal(t, "Toyota Motor", updated.Name)

	got, err := f.svc.Manufacturer().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Motor", got.Name)

	_, err = f.svc.Manufacturer().Update(ctx, 999, forms.Manufacturer{Name: "X", Country: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManufacturerService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manufacturer(t, "Toyota", "Japan")

	_, err := f.svc.Manufacturer().Create(ctx, forms.Manufacturer{Name: "  ", Country: "Japan"})
	assert.True(t, fieldErrors(t, err).Has("name"))

	_, err = f.svc.Manufacturer().Create(ctx, forms.Manufacturer{Name: "Toyota", Country: "Japan"})
	assert.Equal(t, "Manufacturer with this Name already exists.", fieldErrors(t, err).First("name"))
}

func TestManufacturerService_DeleteInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manufacturer(t, "Toyota", "Japan")
	car, err := f.svc.Car().Create(ctx, forms.Car{Model: "Camry", Manufacturer: strconv.FormatInt(m.ID, 10)})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Manufacturer().Delete(ctx, m.ID), ErrInUse)

	require.NoError(t, f.svc.Car().Delete(ctx, car.ID))
	require.NoError(t, f.svc.Manufacturer().Delete(ctx, m.ID))
	assert.ErrorIs(t, f.svc.Manufacturer().Delete(ctx, m.ID), ErrNotFound)
}

func TestManufacturerService_ListSearchesName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manufacturer(t, "test_name", "test_country")
	f.manufacturer(t, "Other", "test_country")

	list, err := f.svc.Manufacturer().List(ctx, models.ListRequest{Search: "TEST"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "test_name", list.Items[0].Name)
}
