package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type sessionRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSessionRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISessionStorage {
	return &sessionRepo{db: db, log: log}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (token, driver_id, visits, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, s.Token, s.DriverID, s.Visits, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	if err != nil {
		r.log.Error("failed to create session", logger.Error(err))
		return mapWriteError(err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	query := `SELECT token::text, driver_id, visits, created_at, expires_at FROM sessions WHERE token = $1`
	err := r.db.QueryRow(ctx, query, token).Scan(&s.Token, &s.DriverID, &s.Visits, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *sessionRepo) Touch(ctx context.Context, token string) (int, error) {
	var visits int
	err := r.db.QueryRow(ctx, `UPDATE sessions SET visits = visits + 1 WHERE token = $1 RETURNING visits`, token).Scan(&visits)
	if err != nil {
		return 0, mapError(err)
	}
	return visits, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		r.log.Error("failed to delete expired sessions", logger.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
