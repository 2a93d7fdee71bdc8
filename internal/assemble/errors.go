package assemble

import (
	"errors"
	"fmt"
)

// DuplicateIDError reports a unique-id collision between two entities in
// one document. Both colliding entities are named so the offending
// generators can be identified without re-running anything.
type DuplicateIDError struct {
	UniqueID   string
	FirstName  string
	FirstCat   string
	SecondName string
	SecondCat  string
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate unique id %q: claimed by %q (%s) and %q (%s)",
		e.UniqueID, e.FirstName, e.FirstCat, e.SecondName, e.SecondCat)
}

// IsDuplicateIDError checks whether err is (or wraps) a DuplicateIDError.
func IsDuplicateIDError(err error) bool {
	var dup *DuplicateIDError
	return errors.As(err, &dup)
}
