// Package glob matches entry identifiers against shell-style patterns.
//
// Identifiers look like "namespace:path/with/segments". Patterns use
// path.Match syntax (*, ?, [...]) plus ** for any number of path segments,
// so "minecraft:block/**" matches every block identifier in the minecraft
// namespace. A pattern without a namespace separator is also tried against
// the path part alone: "*_planks" matches "minecraft:oak_planks".
package glob

import (
	"path"
	"strings"
)

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Validate returns path.ErrBadPattern if the pattern is malformed.
func Validate(pattern string) error {
	_, err := path.Match(pattern, "")
	return err
}

// Match reports whether id matches the glob pattern.
// Returns an error if the pattern is malformed.
func Match(pattern, id string) (bool, error) {
	// Handle ** (match any path segments)
	if parts := strings.Split(pattern, "**"); len(parts) == 2 {
		return matchSegments(parts[0], parts[1], id)
	}

	matched, err := path.Match(pattern, id)
	if err != nil || matched {
		return matched, err
	}

	// Try matching just the path when the pattern names no namespace
	if strings.Contains(pattern, ":") {
		return false, nil
	}
	_, p, ok := strings.Cut(id, ":")
	if !ok {
		return false, nil
	}
	return path.Match(pattern, p)
}

// matchSegments handles a pattern of the form prefix**suffix. The prefix is
// literal; the suffix is a glob tried against every trailing run of the
// remaining identifier that starts after a "/" or ":" separator.
func matchSegments(prefix, suffix, id string) (bool, error) {
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && !strings.HasPrefix(id, prefix) {
		return false, nil
	}
	if suffix == "" {
		return true, nil
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(id, prefix), "/")
	for i := -1; i < len(rest); i++ {
		if i >= 0 && rest[i] != '/' && rest[i] != ':' {
			continue
		}
		m, err := path.Match(suffix, rest[i+1:])
		if err != nil || m {
			return m, err
		}
	}
	return false, nil
}
