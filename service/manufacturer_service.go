package service

import (
	"context"
	"errors"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type ManufacturerService interface {
	List(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error)
	All(ctx context.Context) ([]*models.Manufacturer, error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	Create(ctx context.Context, form forms.Manufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, id int64, form forms.Manufacturer) (*models.Manufacturer, error)
	// Delete refuses with ErrInUse while cars reference the manufacturer.
	Delete(ctx context.Context, id int64) error
}

type manufacturerService struct {
	stg storage.IManufacturerStorage
	log logger.ILogger
}

func NewManufacturerService(stg storage.IStorage, log logger.ILogger) ManufacturerService {
	return &manufacturerService{
		stg: stg.Manufacturer(),
		log: log,
	}
}

func (s *manufacturerService) List(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error) {
	return s.stg.GetList(ctx, req)
}

func (s *manufacturerService) All(ctx context.Context) ([]*models.Manufacturer, error) {
	return s.stg.GetAll(ctx)
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *manufacturerService) Create(ctx context.Context, form forms.Manufacturer) (*models.Manufacturer, error) {
	cleaned, err := form.Clean()
	if err != nil {
		return nil, err
	}
	m, err := s.stg.Create(ctx, &models.Manufacturer{Name: cleaned.Name, Country: cleaned.Country})
	if err != nil {
		return nil, manufacturerConflict(err)
	}
	s.log.Info("manufacturer created", logger.Int64("manufacturer_id", m.ID))
	return m, nil
}

func (s *manufacturerService) Update(ctx context.Context, id int64, form forms.Manufacturer) (*models.Manufacturer, error) {
	if _, err := s.stg.GetByID(ctx, id); err != nil {
		return nil, err
	}
	cleaned, err := form.Clean()
	if err != nil {
		return nil, err
	}
	m := &models.Manufacturer{ID: id, Name: cleaned.Name, Country: cleaned.Country}
	if err := s.stg.Update(ctx, m); err != nil {
		return nil, manufacturerConflict(err)
	}
	return m, nil
}

func (s *manufacturerService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("manufacturer deleted", logger.Int64("manufacturer_id", id))
	return nil
}

func manufacturerConflict(err error) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return forms.FieldError("name", "Manufacturer with this Name already exists.", err)
	}
	return err
}
