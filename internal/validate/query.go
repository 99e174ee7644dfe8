package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Query validates a raw search query. maxLen of 0 means no limit.
func Query(q string, maxLen int) error {
	if maxLen > 0 && len(q) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(q), maxLen)
	}
	if !utf8.ValidString(q) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidQuery)
	}
	if strings.ContainsRune(q, 0) {
		return fmt.Errorf("%w: null byte", ErrInvalidQuery)
	}
	return nil
}

// QueryName validates the name of a saved query. Names are single words so
// they can be passed to --saved without quoting.
func QueryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(name) > 64 {
		return fmt.Errorf("%w: %q is longer than 64 bytes", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return nil
}
