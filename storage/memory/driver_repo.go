package memory

import (
	"context"
	"sort"
	"time"

	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/storage"
)

type driverRepo struct {
	s *Store
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkDriverUnique(d.Account.Username, d.LicenseNumber, 0); err != nil {
		return nil, err
	}
	r.s.lastDriverID++
	out := *d
	out.ID = r.s.lastDriverID
	out.Cars = nil
	if out.Account.DateJoined.IsZero() {
		out.Account.DateJoined = time.Now().UTC()
	}
	r.s.drivers[out.ID] = out
	return &out, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	carIDs := make([]int64, 0)
	for carID, set := range r.s.carDrivers {
		if set[id] {
			carIDs = append(carIDs, carID)
		}
	}
	sort.Slice(carIDs, func(i, j int) bool { return carIDs[i] < carIDs[j] })
	for _, carID := range carIDs {
		c := r.s.cars[carID]
		d.Cars = append(d.Cars, models.CarRef{
			ID:           c.ID,
			Model:        c.Model,
			Manufacturer: r.s.manufacturers[c.ManufacturerID].Name,
		})
	}
	return &d, nil
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.Account.Username == username {
			return &d, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *driverRepo) GetList(ctx context.Context, req models.ListRequest) (*models.DriverList, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.sortedDrivers()
	matched := search.Filter(all, req.Search, func(d *models.Driver) string { return d.Account.Username })
	return &models.DriverList{
		Items: search.Paginate(matched, req.Page, req.Limit),
		Count: len(matched),
	}, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedDrivers(), nil
}

func (r *driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return storage.ErrNotFound
	}
	if err := r.s.checkDriverUnique("", licenseNumber, id); err != nil {
		return err
	}
	d.LicenseNumber = licenseNumber
	r.s.drivers[id] = d
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.drivers, id)
	for _, set := range r.s.carDrivers {
		delete(set, id)
	}
	for token, sess := range r.s.sessions {
		if sess.DriverID == id {
			delete(r.s.sessions, token)
		}
	}
	return nil
}

func (r *driverRepo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.drivers), nil
}

// checkDriverUnique must be called with the lock held. An empty value is not checked.
func (s *Store) checkDriverUnique(username, licenseNumber string, exceptID int64) error {
	for id, d := range s.drivers {
		if id == exceptID {
			continue
		}
		if username != "" && d.Account.Username == username {
			return &storage.ConflictError{Field: "username"}
		}
		if licenseNumber != "" && d.LicenseNumber == licenseNumber {
			return &storage.ConflictError{Field: "license_number"}
		}
	}
	return nil
}

func (s *Store) sortedDrivers() []*models.Driver {
	out := make([]*models.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Account.Username != out[j].Account.Username {
			return out[i].Account.Username < out[j].Account.Username
		}
		return out[i].ID < out[j].ID
	})
	return out
}
