package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/models"
	"taxiservice/pkg/validator"
)

func TestDriverService_CreatePersistsAndHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.svc.Driver().Create(ctx, driverForm("test_username", "TST12345"))
	require.NoError(t, err)

	stored, err := f.store.Driver().GetByUsername(ctx, "test_username")
	require.NoError(t, err)
	assert.Equal(t, d.ID, stored.ID)
	assert.Equal(t, "First", stored.Account.FirstName)
	assert.Equal(t, "Last", stored.Account.LastName)
	assert.Equal(t, "TST12345", stored.LicenseNumber)
	assert.False(t, stored.Account.IsStaff)

	assert.NotEqual(t, "1qazcde3", stored.Account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Account.PasswordHash), []byte("1qazcde3")))
}

func TestDriverService_CreateNotifiesAdmin(t *testing.T) {
	f := newFixture(t)

	d := f.driver(t, "alice", "ABC12345")

	select {
	case <-f.notifier.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, d.ID, f.notifier.created[0].ID)
}

func TestDriverService_CreateInvalidLicenseStoresNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Driver().Create(ctx, driverForm("alice", "abc12345"))
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrInvalidFormat)
	assert.Equal(t, "first 3 characters must be uppercase letters", fieldErrors(t, err).First("license_number"))

	n, err := f.store.Driver().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDriverService_CreateDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.driver(t, "alice", "ABC12345")

	_, err := f.svc.Driver().Create(ctx, driverForm("alice", "ABC99999"))
	assert.True(t, fieldErrors(t, err).Has("username"))

	_, err = f.svc.Driver().Create(ctx, driverForm("bob", "ABC12345"))
	assert.Equal(t, "Driver with this License number already exists.", fieldErrors(t, err).First("license_number"))
}

func TestDriverService_UpdateLicense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.driver(t, "alice", "ABC12345")

	updated, err := f.svc.Driver().UpdateLicense(ctx, alice, alice.ID, forms.DriverLicenseUpdate{LicenseNumber: " XYZ54321 "})
	require.NoError(t, err)
	assert.Equal(t, "XYZ54321", updated.LicenseNumber)

	stored, err := f.store.Driver().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "XYZ54321", stored.LicenseNumber)
}

func TestDriverService_UpdateLicenseInvalidKeepsOldValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.driver(t, "alice", "ABC12345")

	_, err := f.svc.Driver().UpdateLicense(ctx, alice, alice.ID, forms.DriverLicenseUpdate{LicenseNumber: "ABC1234"})
	assert.Equal(t, "length must be 8 characters", fieldErrors(t, err).First("license_number"))

	stored, err := f.store.Driver().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC12345", stored.LicenseNumber)
}

func TestDriverService_UpdateLicensePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.driver(t, "alice", "ABC12345")
	bob := f.driver(t, "bob", "ABC12346")
	admin := f.staff(t, "admin", "ADM00001")
	form := forms.DriverLicenseUpdate{LicenseNumber: "NEW00001"}

	_, err := f.svc.Driver().UpdateLicense(ctx, bob, alice.ID, form)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Driver().UpdateLicense(ctx, nil, alice.ID, form)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Driver().UpdateLicense(ctx, admin, alice.ID, form)
	assert.NoError(t, err)

	_, err = f.svc.Driver().UpdateLicense(ctx, admin, 999, form)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDriverService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.driver(t, "alice", "ABC12345")
	bob := f.driver(t, "bob", "ABC12346")

	assert.ErrorIs(t, f.svc.Driver().Delete(ctx, bob, alice.ID), ErrForbidden)
	require.NoError(t, f.svc.Driver().Delete(ctx, alice, alice.ID))

	_, err := f.svc.Driver().Get(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDriverService_ListSearchesUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.driver(t, "test_username", "ABC12345")
	f.driver(t, "other_user", "ABC12346")
	f.driver(t, "TEST_driver", "ABC12347")

	list, err := f.svc.Driver().List(ctx, models.ListRequest{Search: "test"})
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	usernames := []string{list.Items[0].Account.Username, list.Items[1].Account.Username}
	assert.ElementsMatch(t, []string{"test_username", "TEST_driver"}, usernames)

	all, err := f.svc.Driver().List(ctx, models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
}
