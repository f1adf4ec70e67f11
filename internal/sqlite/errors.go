package sqlite

import (
	"fmt"
	"strings"

	"github.com/ganot/stageboard/internal/repository"
)

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// storageError tags a driver error as a storage failure.
func storageError(op string, err error) error {
	if isBusy(err) {
		return fmt.Errorf("%w: %s: database busy: %v", repository.ErrStorage, op, err)
	}
	return fmt.Errorf("%w: %s: %v", repository.ErrStorage, op, err)
}
