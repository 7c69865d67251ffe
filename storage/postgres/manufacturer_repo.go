package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewManufacturerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	out := *m
	query := `INSERT INTO manufacturers (name, country) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, m.Name, m.Country).Scan(&out.ID); err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapWriteError(err)
	}
	return &out, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	query := `SELECT id, name, country FROM manufacturers WHERE id = $1`
	if err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Country); err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get manufacturer", logger.Error(err))
		}
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) GetList(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error) {
	pattern := "%" + search.EscapeLike(req.Search) + "%"

	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM manufacturers WHERE name ILIKE $1`, pattern).Scan(&count)
	if err != nil {
		r.log.Error("failed to count manufacturers", logger.Error(err))
		return nil, err
	}

	query := `
		SELECT id, name, country
		FROM manufacturers
		WHERE name ILIKE $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limitArg(req.Limit), req.Offset())
	if err != nil {
		r.log.Error("failed to get manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := &models.ManufacturerList{Items: []*models.Manufacturer{}, Count: count}
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Country); err != nil {
			return nil, err
		}
		list.Items = append(list.Items, &m)
	}
	return list, rows.Err()
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) error {
	tag, err := r.db.Exec(ctx, `UPDATE manufacturers SET name = $1, country = $2 WHERE id = $3`, m.Name, m.Country, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err))
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM manufacturers").Scan(&count)
	return count, err
}

// limitArg turns "no limit" into SQL NULL, which LIMIT treats as ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
