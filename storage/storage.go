package storage

import (
	"context"
	"errors"
	"time"

	"taxiservice/pkg/models"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation, e.g. a taken username.
	ErrDuplicate = errors.New("record already exists")

	// ErrInUse indicates the record is still referenced and cannot be deleted.
	ErrInUse = errors.New("record is referenced")
)

// ConflictError names the column whose unique constraint was violated.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + ": " + ErrDuplicate.Error()
}

func (e *ConflictError) Unwrap() error {
	return ErrDuplicate
}

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Car() ICarStorage
	Driver() IDriverStorage
	Session() ISessionStorage
	Ping(ctx context.Context) error
	Close()
}

// List methods return items in natural order:
// manufacturers by name, cars by id, drivers by username.
// ListRequest.Search is a case-insensitive substring on the searchable field.

type IManufacturerStorage interface {
	Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error)
	GetAll(ctx context.Context) ([]*models.Manufacturer, error)
	Update(ctx context.Context, m *models.Manufacturer) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type ICarStorage interface {
	// Create inserts the car and its driver assignments atomically.
	Create(ctx context.Context, car *models.Car, driverIDs []int64) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.CarList, error)
	// Update replaces model, manufacturer and the whole driver set.
	Update(ctx context.Context, car *models.Car, driverIDs []int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	// ToggleDriver assigns the driver when absent and removes it otherwise.
	ToggleDriver(ctx context.Context, carID, driverID int64) (assigned bool, err error)
}

type IDriverStorage interface {
	Create(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.DriverList, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)
	UpdateLicense(ctx context.Context, id int64, licenseNumber string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type ISessionStorage interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	// Touch increments the visit counter and returns the new value.
	Touch(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
