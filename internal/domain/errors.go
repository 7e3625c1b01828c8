package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoSession    = errors.New("no session")
	// ErrConflict is returned when a row changed between read and write.
	ErrConflict = errors.New("conflict")
)
