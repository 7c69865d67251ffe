package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taxiservice/storage"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapError translates driver errors into storage sentinels. Unknown errors
// are returned unchanged. A foreign key violation means the row is still
// referenced, which is what deletes run into.
func mapError(err error) error {
	return mapErrorFK(err, storage.ErrInUse)
}

// mapWriteError is mapError for inserts and updates, where a foreign key
// violation means the referenced parent does not exist.
func mapWriteError(err error) error {
	return mapErrorFK(err, storage.ErrNotFound)
}

func mapErrorFK(err error, fkErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		return err
	}
	switch pe.Code {
	case uniqueViolationCode:
		return &storage.ConflictError{Field: conflictField(pe)}
	case foreignKeyViolationCode:
		return fkErr
	}
	return err
}

// conflictField derives the column from Postgres' default constraint name
// "<table>_<column>_key".
func conflictField(pe *pgconn.PgError) string {
	name := strings.TrimSuffix(pe.ConstraintName, "_key")
	name = strings.TrimPrefix(name, pe.TableName+"_")
	if name == "" || name == pe.ConstraintName {
		return pe.ColumnName
	}
	return name
}
