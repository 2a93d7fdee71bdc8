package devices

import (
	"errors"
	"fmt"

	"github.com/muurk/areacfg/internal/area"
)

// GenerationError reports that a device generator could not produce its
// fragments because the area spec lacks required context. The device kind is
// always carried so the failure can be attributed in user-facing output.
type GenerationError struct {
	Kind    area.DeviceKind
	Message string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("cannot generate %s configuration: %s", e.Kind, e.Message)
}

// NewGenerationError creates a generation error for the given device kind.
func NewGenerationError(kind area.DeviceKind, format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsGenerationError checks whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
