package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage wraps failures reading or writing a persisted document.
	ErrStorage = errors.New("storage failure")

	// ErrCorrupt is returned when a persisted document cannot be decoded
	ErrCorrupt = fmt.Errorf("%w: corrupt document", ErrStorage)

	// ErrReadOnly is returned when a write is attempted inside a view
	ErrReadOnly = errors.New("write in read-only transaction")
)
