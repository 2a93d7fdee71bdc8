package area

import "fmt"

// ValidationError reports a malformed or contradictory area spec.
// These are user-input errors and are surfaced before any generation runs.
type ValidationError struct {
	Field   string // Spec field that failed validation
	Message string // Human-readable description
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid area spec: %s", e.Message)
	}
	return fmt.Sprintf("invalid area spec (%s): %s", e.Field, e.Message)
}

// IsValidationError checks whether an error is a spec validation error.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
