package service

import (
	"errors"

	"taxiservice/storage"
)

var (
	// ErrNotFound is storage.ErrNotFound so callers need not import storage.
	ErrNotFound = storage.ErrNotFound

	// ErrInUse is returned when deleting a manufacturer that still has cars.
	ErrInUse = storage.ErrInUse

	// ErrUnauthenticated means there is no valid session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the session driver may not touch the target record.
	ErrForbidden = errors.New("forbidden")
)

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."
