package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage/memory"
)

type fakeNotifier struct {
	mu      sync.Mutex
	created []*models.Driver
	sent    chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan struct{}, 16)}
}

func (n *fakeNotifier) DriverCreated(_ context.Context, d *models.Driver) error {
	n.mu.Lock()
	n.created = append(n.created, d)
	n.mu.Unlock()
	n.sent <- struct{}{}
	return nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	store    *memory.Store
	svc      IServiceManager
	notifier *fakeNotifier
	clock    *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.New(),
		notifier: newFakeNotifier(),
		clock:    &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.svc = New(f.store, f.notifier, Options{
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
		Now:        f.clock.Now,
	}, logger.NewNop())
	return f
}

func driverForm(username, license string) forms.DriverCreation {
	return forms.DriverCreation{
		Username:      username,
		Password1:     "1qazcde3",
		Password2:     "1qazcde3",
		FirstName:     "First",
		LastName:      "Last",
		LicenseNumber: license,
	}
}

func (f *fixture) driver(t *testing.T, username, license string) *models.Driver {
	t.Helper()
	d, err := f.svc.Driver().Create(context.Background(), driverForm(username, license))
	require.NoError(t, err)
	return d
}

func (f *fixture) staff(t *testing.T, username, license string) *models.Driver {
	t.Helper()
	d, err := f.svc.Driver().CreateStaff(context.Background(), driverForm(username, license))
	require.NoError(t, err)
	return d
}

func (f *fixture) manufacturer(t *testing.T, name, country string) *models.Manufacturer {
	t.Helper()
	m, err := f.svc.Manufacturer().Create(context.Background(), forms.Manufacturer{Name: name, Country: country})
	require.NoError(t, err)
	return m
}

func fieldErrors(t *testing.T, err error) forms.Errors {
	t.Helper()
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
