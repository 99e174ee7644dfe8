package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jpl-au/facet/internal/catalog"
)

// MaxID is the longest accepted entry identifier in bytes.
const MaxID = 256

// ID validates an entry identifier such as "minecraft:stick".
//
// Validation rules:
//   - Empty identifiers rejected
//   - Null bytes and whitespace rejected (identifiers are single query terms)
//   - At most one namespace separator, and not at either end
//   - Max length MaxID
func ID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if len(id) > MaxID {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrIDTooLong, len(id), MaxID)
	}
	if strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: null byte in %q", ErrInvalidID, id)
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: whitespace in %q", ErrInvalidID, id)
	}
	if strings.Count(id, ":") > 1 || strings.HasPrefix(id, ":") || strings.HasSuffix(id, ":") {
		return fmt.Errorf("%w: malformed namespace in %q", ErrInvalidID, id)
	}
	return nil
}

// Entry validates an entry before it is stored. The entry should already be
// normalised.
func Entry(e catalog.Entry) error {
	if err := ID(e.ID); err != nil {
		return err
	}
	for _, f := range []string{e.Name, e.Namespace, e.NamespaceName} {
		if strings.ContainsRune(f, 0) {
			return fmt.Errorf("%w: null byte in %s", ErrInvalidEntry, e.ID)
		}
	}
	for _, line := range e.Tooltip {
		if strings.ContainsRune(line, 0) {
			return fmt.Errorf("%w: null byte in tooltip of %s", ErrInvalidEntry, e.ID)
		}
	}
	for _, t := range e.Tags {
		if err := Tag(t); err != nil {
			return fmt.Errorf("%s: %w", e.ID, err)
		}
	}
	return nil
}
