// Package storagetest holds behaviour every storage.IStorage implementation
// must share. Backends call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiservice/pkg/models"
	"taxiservice/storage"
)

// Factory returns an empty store. Cleanup may be nil.
type Factory func(t *testing.T) (storage.IStorage, func())

func Run(t *testing.T, newStore Factory) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, s storage.IStorage)
	}{
		{"ManufacturerCRUD", testManufacturerCRUD},
		{"ManufacturerSearchAndOrder", testManufacturerSearchAndOrder},
		{"ManufacturerDeleteInUse", testManufacturerDeleteInUse},
		{"CarCreateRequiresManufacturer", testCarCreateRequiresManufacturer},
		{"CarSearchAndPaging", testCarSearchAndPaging},
		{"CarDriversAndToggle", testCarDriversAndToggle},
		{"CarSearchTreatsWildcardsLiterally", testCarSearchTreatsWildcardsLiterally},
		{"DriverUniqueness", testDriverUniqueness},
		{"DriverSearchAndLicenseUpdate", testDriverSearchAndLicenseUpdate},
		{"DriverDeleteCascades", testDriverDeleteCascades},
		{"Sessions", testSessions},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, cleanup := newStore(t)
			if cleanup != nil {
				t.Cleanup(cleanup)
			}
			tc.fn(t, s)
		})
	}
}

func mustManufacturer(t *testing.T, s storage.IStorage, name string) *models.Manufacturer {
	t.Helper()
	m, err := s.Manufacturer().Create(context.Background(), &models.Manufacturer{Name: name, Country: "country_" + name})
	require.NoError(t, err)
	return m
}

func mustDriver(t *testing.T, s storage.IStorage, username, license string) *models.Driver {
	t.Helper()
	d, err := s.Driver().Create(context.Background(), &models.Driver{
		Account:       models.Account{Username: username, PasswordHash: "hash"},
		LicenseNumber: license,
	})
	require.NoError(t, err)
	return d
}

func mustCar(t *testing.T, s storage.IStorage, model string, manufacturerID int64, driverIDs ...int64) *models.Car {
	t.Helper()
	c, err := s.Car().Create(context.Background(), &models.Car{Model: model, ManufacturerID: manufacturerID}, driverIDs)
	require.NoError(t, err)
	return c
}

func testManufacturerCRUD(t *testing.T, s storage.IStorage) {
	ctx := context.Background()

	m := mustManufacturer(t, s, "toyota")
	assert.NotZero(t, m.ID)

	got, err := s.Manufacturer().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "toyota", got.Name)
	assert.Equal(t, "country_toyota", got.Country)

	_, err = s.Manufacturer().Create(ctx, &models.Manufacturer{Name: "toyota", Country: "x"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	got.Country = "japan"
	require.NoError(t, s.Manufacturer().Update(ctx, got))
	got, err = s.Manufacturer().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "japan", got.Country)

	assert.ErrorIs(t, s.Manufacturer().Update(ctx, &models.Manufacturer{ID: m.ID + 100, Name: "n", Country: "c"}), storage.ErrNotFound)

	n, err := s.Manufacturer().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Manufacturer().Delete(ctx, m.ID))
	_, err = s.Manufacturer().GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Manufacturer().Delete(ctx, m.ID), storage.ErrNotFound)
}

func testManufacturerSearchAndOrder(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	mustManufacturer(t, s, "test_manufacturer_name_y")
	mustManufacturer(t, s, "test_manufacturer_name_x")
	mustManufacturer(t, s, "audi")

	all, err := s.Manufacturer().GetList(ctx, models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	assert.Equal(t, []string{"audi", "test_manufacturer_name_x", "test_manufacturer_name_y"}, manufacturerNames(all.Items))

	found, err := s.Manufacturer().GetList(ctx, models.ListRequest{Search: "X"})
	require.NoError(t, err)
	assert.Equal(t, 1, found.Count)
	assert.Equal(t, []string{"test_manufacturer_name_x"}, manufacturerNames(found.Items))
}

func testManufacturerDeleteInUse(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	m := mustManufacturer(t, s, "bmw")
	c := mustCar(t, s, "x5", m.ID)

	assert.ErrorIs(t, s.Manufacturer().Delete(ctx, m.ID), storage.ErrInUse)

	require.NoError(t, s.Car().Delete(ctx, c.ID))
	require.NoError(t, s.Manufacturer().Delete(ctx, m.ID))
}

func testCarCreateRequiresManufacturer(t *testing.T, s storage.IStorage) {
	_, err := s.Car().Create(context.Background(), &models.Car{Model: "ghost", ManufacturerID: 999}, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err := s.Car().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testCarSearchAndPaging(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	m := mustManufacturer(t, s, "test_manufacturer_name")
	x := mustCar(t, s, "test_model_X", m.ID)
	y := mustCar(t, s, "test_model_Y", m.ID)
	z := mustCar(t, s, "other_x", m.ID)

	all, err := s.Car().GetList(ctx, models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int64{x.ID, y.ID, z.ID}, carIDs(all.Items))
	require.NotNil(t, all.Items[0].Manufacturer)
	assert.Equal(t, "test_manufacturer_name", all.Items[0].Manufacturer.Name)

	found, err := s.Car().GetList(ctx, models.ListRequest{Search: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, found.Count)
	assert.Equal(t, []int64{x.ID, z.ID}, carIDs(found.Items))

	page2, err := s.Car().GetList(ctx, models.ListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page2.Count)
	assert.Equal(t, []int64{z.ID}, carIDs(page2.Items))
}

func testCarSearchTreatsWildcardsLiterally(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	m := mustManufacturer(t, s, "m")
	mustCar(t, s, "model_a", m.ID)
	mustCar(t, s, "modelxa", m.ID)

	found, err := s.Car().GetList(ctx, models.ListRequest{Search: "l_a"})
	require.NoError(t, err)
	assert.Equal(t, 1, found.Count)

	found, err = s.Car().GetList(ctx, models.ListRequest{Search: "%"})
	require.NoError(t, err)
	assert.Zero(t, found.Count)
}

func testCarDriversAndToggle(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	m := mustManufacturer(t, s, "kia")
	a := mustDriver(t, s, "alice", "AAA11111")
	b := mustDriver(t, s, "bob", "BBB22222")

	c := mustCar(t, s, "rio", m.ID, b.ID, a.ID)
	assert.Equal(t, []string{"alice", "bob"}, refNames(c.Drivers))
	assert.Equal(t, "kia", c.Manufacturer.Name)

	assigned, err := s.Car().ToggleDriver(ctx, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	assigned, err = s.Car().ToggleDriver(ctx, c.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	c.Model = "ceed"
	require.NoError(t, s.Car().Update(ctx, c, []int64{b.ID}))
	got, err := s.Car().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ceed", got.Model)
	assert.Equal(t, []string{"bob"}, refNames(got.Drivers))

	withCars, err := s.Driver().GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, withCars.Cars, 1)
	assert.Equal(t, "ceed", withCars.Cars[0].Model)
	assert.Equal(t, "kia", withCars.Cars[0].Manufacturer)

	err = s.Car().Update(ctx, c, []int64{999})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	got, err = s.Car().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, refNames(got.Drivers), "failed update must not touch assignments")

	_, err = s.Car().ToggleDriver(ctx, c.ID+100, a.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDriverUniqueness(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	mustDriver(t, s, "admin", "RRR12645")

	_, err := s.Driver().Create(ctx, &models.Driver{
		Account:       models.Account{Username: "admin", PasswordHash: "h"},
		LicenseNumber: "QQQ12645",
	})
	var ce *storage.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "username", ce.Field)

	_, err = s.Driver().Create(ctx, &models.Driver{
		Account:       models.Account{Username: "other", PasswordHash: "h"},
		LicenseNumber: "RRR12645",
	})
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "license_number", ce.Field)
}

func testDriverSearchAndLicenseUpdate(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	y := mustDriver(t, s, "test_username_y", "YYY12345")
	x := mustDriver(t, s, "test_username_x", "XXX12345")

	found, err := s.Driver().GetList(ctx, models.ListRequest{Search: "x"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, x.ID, found.Items[0].ID)

	all, err := s.Driver().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{x.ID, y.ID}, driverIDs(all))

	require.NoError(t, s.Driver().UpdateLicense(ctx, x.ID, "NEW12345"))
	got, err := s.Driver().GetByUsername(ctx, "test_username_x")
	require.NoError(t, err)
	assert.Equal(t, "NEW12345", got.LicenseNumber)
	assert.Equal(t, "hash", got.Account.PasswordHash)

	assert.ErrorIs(t, s.Driver().UpdateLicense(ctx, x.ID, "YYY12345"), storage.ErrDuplicate)
	assert.ErrorIs(t, s.Driver().UpdateLicense(ctx, 999, "ZZZ12345"), storage.ErrNotFound)

	_, err = s.Driver().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDriverDeleteCascades(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	m := mustManufacturer(t, s, "vw")
	d := mustDriver(t, s, "gone", "GON12345")
	c := mustCar(t, s, "golf", m.ID, d.ID)

	now := time.Now().UTC()
	require.NoError(t, s.Session().Create(ctx, &models.Session{
		Token: "8d7f7e36-2b9e-4a51-9c1b-1b0e1c7f0a01", DriverID: d.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, s.Driver().Delete(ctx, d.ID))

	got, err := s.Car().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Drivers)

	_, err = s.Session().Get(ctx, "8d7f7e36-2b9e-4a51-9c1b-1b0e1c7f0a01")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testSessions(t *testing.T, s storage.IStorage) {
	ctx := context.Background()
	d := mustDriver(t, s, "sess", "SES12345")
	now := time.Now().UTC().Truncate(time.Second)

	live := &models.Session{Token: "0b5b1c52-55a4-4d0e-8d0b-6f0b8a2f6c11", DriverID: d.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	old := &models.Session{Token: "0b5b1c52-55a4-4d0e-8d0b-6f0b8a2f6c12", DriverID: d.ID, CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, s.Session().Create(ctx, live))
	require.NoError(t, s.Session().Create(ctx, old))

	got, err := s.Session().Get(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.DriverID)
	assert.True(t, got.ExpiresAt.Equal(live.ExpiresAt))

	v, err := s.Session().Touch(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = s.Session().Touch(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	n, err := s.Session().DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.Session().Delete(ctx, live.Token))
	_, err = s.Session().Get(ctx, live.Token)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.Session().Touch(ctx, live.Token)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func manufacturerNames(ms []*models.Manufacturer) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func carIDs(cs []*models.Car) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func driverIDs(ds []*models.Driver) []int64 {
	out := make([]int64, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func refNames(rs []models.DriverRef) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Username)
	}
	return out
}
