package store

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps every failure to read, decode or write the journal blob.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidEntry is returned by Save for entries that cannot be stored.
	ErrInvalidEntry = errors.New("invalid entry")
)
