package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	url := cfg.PostgresURL()

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := Migrate(url, cfg.MigrationsPath, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected")

	return NewWithPool(pool, log), nil
}

// NewWithPool wraps an already migrated pool.
func NewWithPool(pool *pgxpool.Pool, log logger.ILogger) *Store {
	return &Store{
		pool: pool,
		log:  log,
	}
}

// Migrate applies every pending up migration found in dir.
func Migrate(url, dir string, log logger.ILogger) error {
	mPath := dir
	if !filepath.IsAbs(mPath) {
		cwd, _ := os.Getwd()
		mPath = filepath.Join(cwd, mPath)
	}

	m, err := migrate.New("file://"+mPath, url)
	if err != nil {
		log.Error("migration init error", logger.Error(err), logger.String("path", mPath))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Pool is used by maintenance commands that run raw SQL.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Manufacturer() storage.IManufacturerStorage {
	return NewManufacturerRepo(s.pool, s.log)
}
func (s *Store) Car() storage.ICarStorage       { return NewCarRepo(s.pool, s.log) }
func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.pool, s.log) }
func (s *Store) Session() storage.ISessionStorage {
	return NewSessionRepo(s.pool, s.log)
}
