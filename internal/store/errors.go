package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a read or write failure against the document store.
// Callers abandon the attempted mutation and surface the failure; there is no
// retry or queueing.
var ErrUnavailable = errors.New("store unavailable")

// Unavailable wraps err with the ErrUnavailable marker and an operation label.
func Unavailable(operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, operation)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, operation, err)
}
