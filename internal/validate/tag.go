// tag.go implements tag and tooltip validation.
//
// Tags are labels, so only empty values and null bytes are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string.
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}
