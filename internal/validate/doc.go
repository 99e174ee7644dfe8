// Package validate provides input validation for facet's domain types.
//
// This package enforces data integrity rules at the boundary between user
// input and the storage layer. Each validation function returns nil on
// success or a descriptive error on failure.
//
// Validation is minimal. Clearly broken inputs (empty identifiers, null
// bytes, whitespace inside identifiers, excessive sizes) are rejected; entry
// names, tooltips and queries are otherwise free text.
//
// All validation errors wrap one of the sentinel errors defined in
// errors.go. Use errors.Is() for checking:
//
//	if errors.Is(err, validate.ErrInvalidID) {
//	    // handle invalid identifier
//	}
package validate
