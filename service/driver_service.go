package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/notify"
	"taxiservice/storage"
)

const notifyTimeout = 10 * time.Second

type DriverService interface {
	List(ctx context.Context, req models.ListRequest) (*models.DriverList, error)
	All(ctx context.Context) ([]*models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	// Create validates the form and persists a new driver. Validation
	// failures come back as *forms.ValidationError and nothing is stored.
	Create(ctx context.Context, form forms.DriverCreation) (*models.Driver, error)
	// CreateStaff is Create for accounts that may manage other drivers.
	CreateStaff(ctx context.Context, form forms.DriverCreation) (*models.Driver, error)
	// UpdateLicense changes the license number of driver id. The actor must
	// be that driver or staff.
	UpdateLicense(ctx context.Context, actor *models.Driver, id int64, form forms.DriverLicenseUpdate) (*models.Driver, error)
	Delete(ctx context.Context, actor *models.Driver, id int64) error
}

type driverService struct {
	stg      storage.IDriverStorage
	notifier notify.INotifier
	cost     int
	log      logger.ILogger
}

func NewDriverService(stg storage.IStorage, notifier notify.INotifier, opts Options, log logger.ILogger) DriverService {
	opts = opts.withDefaults()
	if notifier == nil {
		notifier = notify.NewNop()
	}
	return &driverService{
		stg:      stg.Driver(),
		notifier: notifier,
		cost:     opts.BcryptCost,
		log:      log,
	}
}

func (s *driverService) List(ctx context.Context, req models.ListRequest) (*models.DriverList, error) {
	return s.stg.GetList(ctx, req)
}

func (s *driverService) All(ctx context.Context) ([]*models.Driver, error) {
	return s.stg.GetAll(ctx)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *driverService) Create(ctx context.Context, form forms.DriverCreation) (*models.Driver, error) {
	return s.create(ctx, form, false)
}

func (s *driverService) CreateStaff(ctx context.Context, form forms.DriverCreation) (*models.Driver, error) {
	return s.create(ctx, form, true)
}

func (s *driverService) create(ctx context.Context, form forms.DriverCreation, staff bool) (*models.Driver, error) {
	cleaned, err := form.Clean()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cleaned.Password1), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, forms.FieldError("password2", "This password is too long.", err)
		}
		return nil, err
	}

	d, err := s.stg.Create(ctx, &models.Driver{
		Account: models.Account{
			Username:     cleaned.Username,
			PasswordHash: string(hash),
			FirstName:    cleaned.FirstName,
			LastName:     cleaned.LastName,
			IsStaff:      staff,
		},
		LicenseNumber: cleaned.LicenseNumber,
	})
	if err != nil {
		if ferr := driverConflict(err); ferr != nil {
			return nil, ferr
		}
		return nil, err
	}

	s.log.Info("driver created", logger.Int64("driver_id", d.ID), logger.String("username", d.Account.Username))
	s.notifyCreated(ctx, d)
	return d, nil
}

// notifyCreated runs detached from the request so a slow bot cannot delay
// the redirect.
func (s *driverService) notifyCreated(ctx context.Context, d *models.Driver) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer cancel()
		if err := s.notifier.DriverCreated(ctx, d); err != nil {
			s.log.Warning("driver created notification failed", logger.Error(err), logger.Int64("driver_id", d.ID))
		}
	}()
}

func (s *driverService) UpdateLicense(ctx context.Context, actor *models.Driver, id int64, form forms.DriverLicenseUpdate) (*models.Driver, error) {
	if err := CanManageDriver(actor, id); err != nil {
		return nil, err
	}
	if _, err := s.stg.GetByID(ctx, id); err != nil {
		return nil, err
	}

	cleaned, err := form.Clean()
	if err != nil {
		return nil, err
	}

	if err := s.stg.UpdateLicense(ctx, id, cleaned.LicenseNumber); err != nil {
		if ferr := driverConflict(err); ferr != nil {
			return nil, ferr
		}
		return nil, err
	}

	s.log.Info("driver license updated", logger.Int64("driver_id", id), logger.Int64("actor_id", actor.ID))
	return s.stg.GetByID(ctx, id)
}

func (s *driverService) Delete(ctx context.Context, actor *models.Driver, id int64) error {
	if err := CanManageDriver(actor, id); err != nil {
		return err
	}
	if err := s.stg.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("driver deleted", logger.Int64("driver_id", id), logger.Int64("actor_id", actor.ID))
	return nil
}

// CanManageDriver allows a driver to manage their own record and staff to
// manage any record.
func CanManageDriver(actor *models.Driver, id int64) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.ID != id && !actor.Account.IsStaff {
		return ErrForbidden
	}
	return nil
}

// driverConflict turns a unique violation into a field error, or returns nil.
func driverConflict(err error) error {
	var ce *storage.ConflictError
	if !errors.As(err, &ce) {
		return nil
	}
	switch ce.Field {
	case "username":
		return forms.FieldError("username", "A user with that username already exists.", err)
	case "license_number":
		return forms.FieldError("license_number", "Driver with this License number already exists.", err)
	}
	return forms.FieldError(forms.NonField, "This record already exists.", err)
}
