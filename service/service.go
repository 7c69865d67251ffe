package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/notify"
	"taxiservice/storage"
)

type IServiceManager interface {
	Manufacturer() ManufacturerService
	Car() CarService
	Driver() DriverService
	Auth() AuthService
	Stats(ctx context.Context) (*models.Stats, error)
}

type Options struct {
	SessionTTL time.Duration
	BcryptCost int
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.SessionTTL <= 0 {
		o.SessionTTL = 14 * 24 * time.Hour
	}
	if o.BcryptCost < bcrypt.MinCost || o.BcryptCost > bcrypt.MaxCost {
		o.BcryptCost = bcrypt.DefaultCost
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

type service struct {
	stg                 storage.IStorage
	log                 logger.ILogger
	manufacturerService ManufacturerService
	carService          CarService
	driverService       DriverService
	authService         AuthService
}

func New(stg storage.IStorage, notifier notify.INotifier, opts Options, log logger.ILogger) IServiceManager {
	opts = opts.withDefaults()
	return &service{
		stg:                 stg,
		log:                 log,
		manufacturerService: NewManufacturerService(stg, log),
		carService:          NewCarService(stg, log),
		driverService:       NewDriverService(stg, notifier, opts, log),
		authService:         NewAuthService(stg, opts, log),
	}
}

func (s *service) Manufacturer() ManufacturerService {
	return s.manufacturerService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Auth() AuthService {
	return s.authService
}

func (s *service) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		stats models.Stats
		err   error
	)
	if stats.Drivers, err = s.stg.Driver().Count(ctx); err != nil {
		return nil, err
	}
	if stats.Cars, err = s.stg.Car().Count(ctx); err != nil {
		return nil, err
	}
	if stats.Manufacturers, err = s.stg.Manufacturer().Count(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
