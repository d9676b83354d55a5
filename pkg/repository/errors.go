package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches within the current
	// tenant's scope.
	ErrNotFound = errors.New("repository: document not found")

	// ErrEncodeDocument is returned when an entity cannot be converted to
	// its storage representation.
	ErrEncodeDocument = errors.New("repository: failed to encode document")

	// ErrStorageFailure wraps failures of the underlying document store.
	ErrStorageFailure = errors.New("repository: storage operation failed")
)
