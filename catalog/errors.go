package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("book not found")

// NotFoundError is the single business error that crosses the service
// boundary: the persistent store has no record for the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Book id: %s not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match wrapped instances.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
