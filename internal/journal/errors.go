package journal

import "errors"

var (
	// ErrInvalidInput rejects empty submissions and out-of-range queries.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyWritten is returned when today already has an entry.
	ErrAlreadyWritten = errors.New("entry already written today")

	// ErrEmptyMonth is returned when composing a reflection for a month with no entries.
	ErrEmptyMonth = errors.New("no entries in month")
)
