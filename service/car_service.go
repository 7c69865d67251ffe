package service

import (
	"context"
	"errors"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type CarService interface {
	List(ctx context.Context, req models.ListRequest) (*models.CarList, error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	Create(ctx context.Context, form forms.Car) (*models.Car, error)
	Update(ctx context.Context, id int64, form forms.Car) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	// ToggleAssign adds the actor to the car's drivers or removes them.
	ToggleAssign(ctx context.Context, actor *models.Driver, carID int64) (assigned bool, err error)
}

type carService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		stg: stg,
		log: log,
	}
}

func (s *carService) List(ctx context.Context, req models.ListRequest) (*models.CarList, error) {
	return s.stg.Car().GetList(ctx, req)
}

func (s *carService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.stg.Car().GetByID(ctx, id)
}

func (s *carService) Create(ctx context.Context, form forms.Car) (*models.Car, error) {
	data, err := s.clean(ctx, form)
	if err != nil {
		return nil, err
	}
	car, err := s.stg.Car().Create(ctx, &models.Car{Model: data.Model, ManufacturerID: data.ManufacturerID}, data.DriverIDs)
	if err != nil {
		return nil, carRefError(err)
	}
	s.log.Info("car created", logger.Int64("car_id", car.ID))
	return car, nil
}

func (s *carService) Update(ctx context.Context, id int64, form forms.Car) (*models.Car, error) {
	if _, err := s.stg.Car().GetByID(ctx, id); err != nil {
		return nil, err
	}
	data, err := s.clean(ctx, form)
	if err != nil {
		return nil, err
	}
	car := &models.Car{ID: id, Model: data.Model, ManufacturerID: data.ManufacturerID}
	if err := s.stg.Car().Update(ctx, car, data.DriverIDs); err != nil {
		return nil, carRefError(err)
	}
	return s.stg.Car().GetByID(ctx, id)
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Car().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("car deleted", logger.Int64("car_id", id))
	return nil
}

func (s *carService) ToggleAssign(ctx context.Context, actor *models.Driver, carID int64) (bool, error) {
	if actor == nil {
		return false, ErrUnauthenticated
	}
	assigned, err := s.stg.Car().ToggleDriver(ctx, carID, actor.ID)
	if err != nil {
		return false, err
	}
	s.log.Info("car assignment toggled",
		logger.Int64("car_id", carID),
		logger.Int64("driver_id", actor.ID),
		logger.Bool("assigned", assigned),
	)
	return assigned, nil
}

// clean runs the form rules and then checks the chosen references exist.
func (s *carService) clean(ctx context.Context, form forms.Car) (forms.CarData, error) {
	data, err := form.Clean()
	if err != nil {
		return forms.CarData{}, err
	}

	errs := forms.Errors{}
	if _, err := s.stg.Manufacturer().GetByID(ctx, data.ManufacturerID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return forms.CarData{}, err
		}
		errs.Add("manufacturer", invalidChoice)
	}
	for _, id := range data.DriverIDs {
		if _, err := s.stg.Driver().GetByID(ctx, id); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return forms.CarData{}, err
			}
			errs.Add("drivers", invalidChoice)
			break
		}
	}
	if errs.Any() {
		return forms.CarData{}, forms.NewValidationError(errs)
	}
	return data, nil
}

// carRefError covers a reference removed between clean and the write.
func carRefError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return forms.FieldError(forms.NonField, invalidChoice, err)
	}
	return err
}
