package memory

import (
	"context"
	"sort"

	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/storage"
)

type carRepo struct {
	s *Store
}

func (r *carRepo) Create(ctx context.Context, car *models.Car, driverIDs []int64) (*models.Car, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkCarRefs(car.ManufacturerID, driverIDs); err != nil {
		return nil, err
	}
	r.s.lastCarID++
	stored := models.Car{ID: r.s.lastCarID, Model: car.Model, ManufacturerID: car.ManufacturerID}
	r.s.cars[stored.ID] = stored
	r.s.setCarDrivers(stored.ID, driverIDs)
	return r.s.loadCar(stored.ID), nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.cars[id]; !ok {
		return nil, storage.ErrNotFound
	}
	return r.s.loadCar(id), nil
}

func (r *carRepo) GetList(ctx context.Context, req models.ListRequest) (*models.CarList, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*models.Car, 0, len(r.s.cars))
	for id, c := range r.s.cars {
		m := r.s.manufacturers[c.ManufacturerID]
		all = append(all, &models.Car{ID: id, Model: c.Model, ManufacturerID: c.ManufacturerID, Manufacturer: &m})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	matched := search.Filter(all, req.Search, func(c *models.Car) string { return c.Model })
	return &models.CarList{
		Items: search.Paginate(matched, req.Page, req.Limit),
		Count: len(matched),
	}, nil
}

func (r *carRepo) Update(ctx context.Context, car *models.Car, driverIDs []int64) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[car.ID]; !ok {
		return storage.ErrNotFound
	}
	if err := r.s.checkCarRefs(car.ManufacturerID, driverIDs); err != nil {
		return err
	}
	r.s.cars[car.ID] = models.Car{ID: car.ID, Model: car.Model, ManufacturerID: car.ManufacturerID}
	r.s.setCarDrivers(car.ID, driverIDs)
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.cars, id)
	delete(r.s.carDrivers, id)
	return nil
}

func (r *carRepo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.cars), nil
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[carID]; !ok {
		return false, storage.ErrNotFound
	}
	if _, ok := r.s.drivers[driverID]; !ok {
		return false, storage.ErrNotFound
	}
	set := r.s.carDrivers[carID]
	if set[driverID] {
		delete(set, driverID)
		return false, nil
	}
	if set == nil {
		set = make(map[int64]bool)
		r.s.carDrivers[carID] = set
	}
	set[driverID] = true
	return true, nil
}

// The helpers below must be called with the lock held.

func (s *Store) checkCarRefs(manufacturerID int64, driverIDs []int64) error {
	if _, ok := s.manufacturers[manufacturerID]; !ok {
		return storage.ErrNotFound
	}
	for _, id := range driverIDs {
		if _, ok := s.drivers[id]; !ok {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (s *Store) setCarDrivers(carID int64, driverIDs []int64) {
	set := make(map[int64]bool, len(driverIDs))
	for _, id := range driverIDs {
		set[id] = true
	}
	s.carDrivers[carID] = set
}

func (s *Store) loadCar(id int64) *models.Car {
	c := s.cars[id]
	m := s.manufacturers[c.ManufacturerID]
	out := &models.Car{ID: c.ID, Model: c.Model, ManufacturerID: c.ManufacturerID, Manufacturer: &m}

	for driverID := range s.carDrivers[id] {
		d := s.drivers[driverID]
		out.Drivers = append(out.Drivers, models.DriverRef{
			ID:        d.ID,
			Username:  d.Account.Username,
			FirstName: d.Account.FirstName,
			LastName:  d.Account.LastName,
		})
	}
	sort.Slice(out.Drivers, func(i, j int) bool {
		if out.Drivers[i].Username != out.Drivers[j].Username {
			return out.Drivers[i].Username < out.Drivers[j].Username
		}
		return out.Drivers[i].ID < out.Drivers[j].ID
	})
	return out
}
