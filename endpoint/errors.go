package endpoint

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an endpoint id does not exist in the registry.
var ErrNotFound = errors.New("endpoint not found")

/* ValidationError signals bad registry input (empty name, unparseable URL).
 * The HTTP layer maps it to a 4xx response; it never reaches the dispatch
 * engine.
 */
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
