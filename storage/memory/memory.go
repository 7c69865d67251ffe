// Package memory is an in-process implementation of storage.IStorage. It keeps
// the same ordering, search and integrity rules as the Postgres store and is
// safe for concurrent use.
package memory

import (
	"context"
	"sync"

	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type Store struct {
	mu sync.RWMutex

	manufacturers map[int64]models.Manufacturer
	cars          map[int64]models.Car
	drivers       map[int64]models.Driver
	// carDrivers is the many-to-many assignment table.
	carDrivers map[int64]map[int64]bool
	sessions   map[string]models.Session

	lastManufacturerID int64
	lastCarID          int64
	lastDriverID       int64
}

func New() *Store {
	return &Store{
		manufacturers: make(map[int64]models.Manufacturer),
		cars:          make(map[int64]models.Car),
		drivers:       make(map[int64]models.Driver),
		carDrivers:    make(map[int64]map[int64]bool),
		sessions:      make(map[string]models.Session),
	}
}

func (s *Store) Manufacturer() storage.IManufacturerStorage { return &manufacturerRepo{s: s} }
func (s *Store) Car() storage.ICarStorage                   { return &carRepo{s: s} }
func (s *Store) Driver() storage.IDriverStorage             { return &driverRepo{s: s} }
func (s *Store) Session() storage.ISessionStorage           { return &sessionRepo{s: s} }

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}
