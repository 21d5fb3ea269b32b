package store

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed caller input rejected before any side
// effect. The API layer maps it to a 400; everything else coming out of a
// store is infrastructure failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
