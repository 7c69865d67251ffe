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

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `id, username, password_hash, first_name, last_name, is_staff, date_joined, license_number`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.Account.Username, &d.Account.PasswordHash, &d.Account.FirstName, &d.Account.LastName,
		&d.Account.IsStaff, &d.Account.DateJoined, &d.LicenseNumber,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (username, password_hash, first_name, last_name, is_staff, license_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + driverColumns
	out, err := scanDriver(r.db.QueryRow(ctx, query,
		d.Account.Username, d.Account.PasswordHash, d.Account.FirstName, d.Account.LastName,
		d.Account.IsStaff, d.LicenseNumber,
	))
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, storage.ErrDuplicate) {
			r.log.Error("failed to create driver", logger.Error(err))
		}
		return nil, err
	}
	return out, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get driver by id", logger.Error(err))
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.model, m.name
		FROM car_drivers cd
		JOIN cars c ON c.id = cd.car_id
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE cd.driver_id = $1
		ORDER BY c.id
	`, id)
	if err != nil {
		r.log.Error("failed to get driver cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CarRef
		if err := rows.Scan(&c.ID, &c.Model, &c.Manufacturer); err != nil {
			return nil, err
		}
		d.Cars = append(d.Cars, c)
	}
	return d, rows.Err()
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE username = $1`, username))
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get driver by username", logger.Error(err))
		}
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetList(ctx context.Context, req models.ListRequest) (*models.DriverList, error) {
	pattern := "%" + search.EscapeLike(req.Search) + "%"

	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM drivers WHERE username ILIKE $1`, pattern).Scan(&count)
	if err != nil {
		r.log.Error("failed to count drivers", logger.Error(err))
		return nil, err
	}

	query := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE username ILIKE $1
		ORDER BY username, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset())
	if err != nil {
		r.log.Error("failed to get drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := &models.DriverList{Items: []*models.Driver{}, Count: count}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, d)
	}
	return list, rows.Err()
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (r *driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	tag, err := r.db.Exec(ctx, "UPDATE drivers SET license_number = $1 WHERE id = $2", licenseNumber, id)
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, storage.ErrDuplicate) {
			r.log.Error("failed to update driver license", logger.Error(err))
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM drivers").Scan(&count)
	return count, err
}
