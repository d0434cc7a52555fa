package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a uniqueness constraint rejected the write.
	ErrConflict = errors.New("repository: conflict")
	// ErrNotImplemented signals the operation is not yet implemented for the chosen backend.
	ErrNotImplemented = errors.New("repository: not implemented")
)
