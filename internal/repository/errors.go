package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an entity is created with an ID already in use
	ErrDuplicateID = errors.New("duplicate id")
)
