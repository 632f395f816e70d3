package blobs

import (
	"errors"
	"fmt"
)

// ErrUpload marks a blob write failure. Callers must not attach the upload
// result to an entity once this is returned.
var ErrUpload = errors.New("upload failed")

// Upload wraps err with the ErrUpload marker and an operation label.
func Upload(operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUpload, operation)
	}
	return fmt.Errorf("%w: %s: %w", ErrUpload, operation, err)
}
