package render

import (
	"errors"
	"fmt"
)

// SerializationError reports a document value that cannot be represented
// in YAML. Path identifies the offending field.
type SerializationError struct {
	Path    string
	Message string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %s: %s", e.Path, e.Message)
}

// IsSerializationError reports whether err is a SerializationError.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}
