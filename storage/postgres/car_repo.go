package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func (r *carRepo) Create(ctx context.Context, car *models.Car, driverIDs []int64) (*models.Car, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, query, car.Model, car.ManufacturerID).Scan(&id); err != nil {
			return err
		}
		return insertCarDrivers(ctx, tx, id, driverIDs)
	})
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapWriteError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	car := models.Car{Manufacturer: &models.Manufacturer{}}
	query := `
		SELECT c.id, c.model, m.id, m.name, m.country
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID, &car.Model, &car.Manufacturer.ID, &car.Manufacturer.Name, &car.Manufacturer.Country,
	)
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get car", logger.Error(err))
		}
		return nil, err
	}
	car.ManufacturerID = car.Manufacturer.ID

	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.username, d.first_name, d.last_name
		FROM car_drivers cd
		JOIN drivers d ON d.id = cd.driver_id
		WHERE cd.car_id = $1
		ORDER BY d.username, d.id
	`, id)
	if err != nil {
		r.log.Error("failed to get car drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DriverRef
		if err := rows.Scan(&d.ID, &d.Username, &d.FirstName, &d.LastName); err != nil {
			return nil, err
		}
		car.Drivers = append(car.Drivers, d)
	}
	return &car, rows.Err()
}

func (r *carRepo) GetList(ctx context.Context, req models.ListRequest) (*models.CarList, error) {
	pattern := "%" + search.EscapeLike(req.Search) + "%"

	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM cars WHERE model ILIKE $1`, pattern).Scan(&count)
	if err != nil {
		r.log.Error("failed to count cars", logger.Error(err))
		return nil, err
	}

	query := `
		SELECT c.id, c.model, m.id, m.name, m.country
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.model ILIKE $1
		ORDER BY c.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset())
	if err != nil {
		r.log.Error("failed to get cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := &models.CarList{Items: []*models.Car{}, Count: count}
	for rows.Next() {
		car := models.Car{Manufacturer: &models.Manufacturer{}}
		if err := rows.Scan(&car.ID, &car.Model, &car.Manufacturer.ID, &car.Manufacturer.Name, &car.Manufacturer.Country); err != nil {
			return nil, err
		}
		car.ManufacturerID = car.Manufacturer.ID
		list.Items = append(list.Items, &car)
	}
	return list, rows.Err()
}

func (r *carRepo) Update(ctx context.Context, car *models.Car, driverIDs []int64) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`,
			car.Model, car.ManufacturerID, car.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1`, car.ID); err != nil {
			return err
		}
		return insertCarDrivers(ctx, tx, car.ID, driverIDs)
	})
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update car", logger.Error(err))
		}
		return err
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM cars").Scan(&count)
	return count, err
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	var assigned bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the car row so concurrent toggles of the same pair serialize.
		var id int64
		if err := tx.QueryRow(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, carID).Scan(&id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`, carID, driverID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			assigned = false
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2)`, carID, driverID); err != nil {
			return err
		}
		assigned = true
		return nil
	})
	if err != nil {
		return false, mapWriteError(err)
	}
	return assigned, nil
}

func insertCarDrivers(ctx context.Context, tx pgx.Tx, carID int64, driverIDs []int64) error {
	if len(driverIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO car_drivers (car_id, driver_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, carID, driverIDs)
	return err
}
