package memory

import (
	"context"
	"sort"
	"strings"

	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	s *Store
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.manufacturerNameTaken(m.Name, 0) {
		return nil, &storage.ConflictError{Field: "name"}
	}
	r.s.lastManufacturerID++
	out := *m
	out.ID = r.s.lastManufacturerID
	r.s.manufacturers[out.ID] = out
	return &out, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.manufacturers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (r *manufacturerRepo) GetList(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.sortedManufacturers()
	matched := search.Filter(all, req.Search, func(m *models.Manufacturer) string { return m.Name })
	return &models.ManufacturerList{
		Items: search.Paginate(matched, req.Page, req.Limit),
		Count: len(matched),
	}, nil
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedManufacturers(), nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[m.ID]; !ok {
		return storage.ErrNotFound
	}
	if r.s.manufacturerNameTaken(m.Name, m.ID) {
		return &storage.ConflictError{Field: "name"}
	}
	r.s.manufacturers[m.ID] = *m
	return nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[id]; !ok {
		return storage.ErrNotFound
	}
	for _, c := range r.s.cars {
		if c.ManufacturerID == id {
			return storage.ErrInUse
		}
	}
	delete(r.s.manufacturers, id)
	return nil
}

func (r *manufacturerRepo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.manufacturers), nil
}

// manufacturerNameTaken must be called with the lock held.
func (s *Store) manufacturerNameTaken(name string, exceptID int64) bool {
	for id, m := range s.manufacturers {
		if id != exceptID && m.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) sortedManufacturers() []*models.Manufacturer {
	out := make([]*models.Manufacturer, 0, len(s.manufacturers))
	for _, m := range s.manufacturers {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := strings.Compare(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
