package interfaces

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when an optimistic update loses the
	// race, i.e. the stored version no longer matches the caller's copy.
	ErrVersionConflict = errors.New("record was modified by another session")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("record already exists")
)
