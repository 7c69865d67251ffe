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

func formID(n int64) string {
	return strconv.FormatInt(n, 10)
}

func TestCarService_CreateWithDrivers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manufacturer(t, "Toyota", "Japan")
	alice := f.driver(t, "alice", "ABC12345")
	bob := f.driver(t, "bob", "ABC12346")

	car, err := f.svc.Car().Create(ctx, forms.Car{
		Model:        "Camry",
		Manufacturer: formID(m.ID),
		Drivers:      []string{formID(alice.ID), formID(bob.ID), formID(alice.ID)},
	})
	require.NoError(t, err)

	got, err := f.svc.Car().Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camry", got.Model)
	require.NotNil(t, got.Manufacturer)
	assert.Equal(t, "Toyota", got.Manufacturer.Name)
	assert.Len(t, got.Drivers, 2)
	assert.True(t, got.HasDriver(alice.ID))
	assert.True(t, got.HasDriver(bob.ID))
}

func TestCarService_CreateRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manufacturer(t, "Toyota", "Japan")

	_, err := f.svc.Car().Create(ctx, forms.Car{Model: "Camry", Manufacturer: "999"})
	assert.Equal(t, invalidChoice, fieldErrors(t, err).First("manufacturer"))

	_, err = f.svc.Car().Create(ctx, forms.Car{Model: "Camry", Manufacturer: formID(m.ID), Drivers: []string{"999"}})
	assert.Equal(t, invalidChoice, fieldErrors(t, err).First("drivers"))

	_, err = f.svc.Car().Create(ctx, forms.Car{Model: "", Manufacturer: "x"})
	errs := fieldErrors(t, err)
	assert.True(t, errs.Has("model"))
	assert.True(t, errs.Has("manufacturer"))

	n, err := f.store.Car().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCarService_UpdateReplacesDrivers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	toyota := f.manufacturer(t, "Toyota", "Japan")
	bmw := f.manufacturer(t, "BMW", "Germany")
	alice := f.driver(t, "alice", "ABC12345")
	bob := f.driver(t, "bob", "ABC12346")

	car, err := f.svc.Car().Create(ctx, forms.Car{Model: "Camry", Manufacturer: formID(toyota.ID), Drivers: []string{formID(alice.ID)}})
	require.NoError(t, err)

	updated, err := f.svc.Car().Update(ctx, car.ID, forms.Car{Model: "X5", Manufacturer: formID(bmw.ID), Drivers: []string{formID(bob.ID)}})
	require.NoError(t, err)
	assert.Equal(t, "X5", updated.Model)
	assert.Equal(t, bmw.ID, updated.ManufacturerID)
	assert.False(t, updated.HasDriver(alice.ID))
	assert.True(t, updated.HasDriver(bob.ID))

	_, err = f.svc.Car().Update(ctx, 999, forms.Car{Model: "X5", Manufacturer: formID(bmw.ID)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCarService_ToggleAssign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manufacturer(t, "Toyota", "Japan")
	alice := f.driver(t, "alice", "ABC12345")
	car, err := f.svc.Car().Create(ctx, forms.Car{Model: "Camry", Manufacturer: formID(m.ID)})
	require.NoError(t, err)

	assigned, err := f.svc.Car().ToggleAssign(ctx, alice, car.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	d, err := f.svc.Driver().Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, d.Cars, 1)
	assert.Equal(t, "Camry", d.Cars[0].Model)

	assigned, err = f.svc.Car().ToggleAssign(ctx, alice, car.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	_, err = f.svc.Car().ToggleAssign(ctx, alice, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Car().ToggleAssign(ctx, nil, car.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCarService_ListSearchesModel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manufacturer(t, "Toyota", "Japan")
	for _, model := range []string{"test_model", "Corolla", "Other TEST"} {
		_, err := f.svc.Car().Create(ctx, forms.Car{Model: model, Manufacturer: formID(m.ID)})
		require.NoError(t, err)
	}

	list, err := f.svc.Car().List(ctx, models.ListRequest{Search: "test"})
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "test_model", list.Items[0].Model)
	assert.Equal(t, "Other TEST", list.Items[1].Model)
}
