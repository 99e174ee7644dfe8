// errors.go defines sentinel errors for validation failures.
//
// Detailed messages are provided by wrapping these with fmt.Errorf in the
// validation functions.

package validate

import "errors"

var (
	ErrInvalidID    = errors.New("invalid entry id")
	ErrIDTooLong    = errors.New("entry id too long")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrInvalidEntry = errors.New("invalid entry")
	ErrInvalidName  = errors.New("invalid query name")
	ErrInvalidQuery = errors.New("invalid query")
	ErrQueryTooLong = errors.New("query too long")
)
