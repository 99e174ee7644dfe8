// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP server address settings by dotted key (for example
// "search.mod.prefix"). Matcher keys are generated from the default matcher
// names so a new default matcher gains its keys without edits here.
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/facet/internal/search/argument"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	keys := []string{"author.name", "author.email", "search.prefilter"}
	for _, name := range argument.Names() {
		keys = append(keys, "search."+name+".mode", "search."+name+".prefix")
	}
	return append(keys, "limits.max_query", "limits.max_results")
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// matcherKey splits "search.<name>.<field>" for a known matcher.
func matcherKey(key string) (name, field string, ok bool) {
	rest, found := strings.CutPrefix(key, "search.")
	if !found {
		return "", "", false
	}
	name, field, found = strings.Cut(rest, ".")
	if !found || !slices.Contains(argument.Names(), name) {
		return "", "", false
	}
	if field != "mode" && field != "prefix" {
		return "", "", false
	}
	return name, field, true
}

// defaultMatcher returns the built-in mode and prefix of a matcher.
func defaultMatcher(name string) (mode, prefix string) {
	for _, m := range argument.Defaults(nil) {
		if m.Name() != name {
			continue
		}
		p, _ := m.Prefix()
		return m.Mode().String(), p
	}
	return "", ""
}

func (c *Config) matcherValue(name, field string) string {
	m := c.Search.Matchers[name]
	mode, prefix := defaultMatcher(name)
	if field == "mode" {
		if m.Mode != "" {
			return m.Mode
		}
		return mode
	}
	if m.Prefix != nil {
		return *m.Prefix
	}
	return prefix
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "search.prefilter":
		return strconv.FormatBool(c.Prefilter()), nil
	case "limits.max_query":
		return strconv.Itoa(c.MaxQuery()), nil
	case "limits.max_results":
		return strconv.Itoa(c.MaxResults()), nil
	}
	if name, field, ok := matcherKey(key); ok {
		return c.matcherValue(name, field), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "search.prefilter":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: search.prefilter must be true or false", ErrInvalidValue)
		}
		c.Search.Prefilter = &b
	case "limits.max_query":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxQuery || n > MaxMaxQuery {
			return fmt.Errorf("%w: limits.max_query must be between %d and %d", ErrInvalidValue, MinMaxQuery, MaxMaxQuery)
		}
		c.Limits.MaxQuery = &n
	case "limits.max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > MaxMaxResults {
			return fmt.Errorf("%w: limits.max_results must be between 0 and %d", ErrInvalidValue, MaxMaxResults)
		}
		c.Limits.MaxResults = &n
	default:
		name, field, ok := matcherKey(key)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		return c.setMatcher(name, field, value)
	}
	return nil
}

func (c *Config) setMatcher(name, field, value string) error {
	m := c.Search.Matchers[name]
	switch field {
	case "mode":
		v := strings.ToLower(value)
		if err := validMode(v); err != nil || v == "" {
			return fmt.Errorf("%w: search.%s.mode must be prefix, always or never", ErrInvalidValue, name)
		}
		m.Mode = v
	case "prefix":
		if err := validPrefix(value); err != nil {
			return err
		}
		m.Prefix = &value
	}
	if c.Search.Matchers == nil {
		c.Search.Matchers = make(map[string]Matcher)
	}
	c.Search.Matchers[name] = m
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string)
	for _, key := range ValidKeys() {
		v, _ := c.Get(key)
		out[key] = v
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "search.prefilter":
		return c.Search.Prefilter != nil
	case "limits.max_query":
		return c.Limits.MaxQuery != nil
	case "limits.max_results":
		return c.Limits.MaxResults != nil
	}
	name, field, ok := matcherKey(key)
	if !ok {
		return false
	}
	m, exists := c.Search.Matchers[name]
	if !exists {
		return false
	}
	if field == "mode" {
		return m.Mode != ""
	}
	return m.Prefix != nil
}
