// Package config provides reading and writing of facet configuration.
// Supports both global (~/.facet/config.yaml) and local (.facet/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/search/argument"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.facet/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .facet/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded against catalog changes.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Matcher overrides the definition of one default search matcher.
type Matcher struct {
	Mode   string  `yaml:"mode,omitempty"`   // prefix, always or never
	Prefix *string `yaml:"prefix,omitempty"` // "" removes the prefix
}

// Search holds search engine options. Matcher overrides sit beside
// prefilter, keyed by matcher name:
//
//	search:
//	  prefilter: false
//	  mod:
//	    prefix: "@mod:"
type Search struct {
	Prefilter *bool              `yaml:"prefilter,omitempty"`
	Matchers  map[string]Matcher `yaml:",inline"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxQuery   *int `yaml:"max_query,omitempty"`
	MaxResults *int `yaml:"max_results,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxQuery   = 1024
	DefaultMaxResults = 0 // unlimited
)

// Validation bounds for configuration values.
const (
	MinMaxQuery   = 1
	MaxMaxQuery   = 64 * 1024
	MaxMaxResults = 1_000_000
)

// Search modes accepted by search.<matcher>.mode.
const (
	ModePrefix = "prefix"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Config contains configuration for facet.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxQuery != nil {
		v := *c.Limits.MaxQuery
		if v < MinMaxQuery || v > MaxMaxQuery {
			return fmt.Errorf("%w: max_query must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxQuery, MaxMaxQuery, v)
		}
	}
	if c.Limits.MaxResults != nil {
		v := *c.Limits.MaxResults
		if v < 0 || v > MaxMaxResults {
			return fmt.Errorf("%w: max_results must be between 0 and %d, got %d",
				ErrInvalidValue, MaxMaxResults, v)
		}
	}
	for name, m := range c.Search.Matchers {
		if !slices.Contains(argument.Names(), name) {
			return fmt.Errorf("%w: search.%s", ErrUnknownKey, name)
		}
		if err := validMode(m.Mode); err != nil {
			return fmt.Errorf("search.%s.mode: %w", name, err)
		}
		if m.Prefix != nil {
			if err := validPrefix(*m.Prefix); err != nil {
				return fmt.Errorf("search.%s.prefix: %w", name, err)
			}
		}
	}
	return nil
}

func validMode(m string) error {
	switch m {
	case "", ModePrefix, ModeAlways, ModeNever:
		return nil
	}
	return fmt.Errorf("%w: mode must be prefix, always or never, got %q", ErrInvalidValue, m)
}

// validPrefix rejects prefixes the query splitter or negation grammar would
// take apart.
func validPrefix(p string) error {
	switch {
	case strings.IndexFunc(p, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: prefix %q contains whitespace", ErrInvalidValue, p)
	case strings.ContainsRune(p, '"'):
		return fmt.Errorf("%w: prefix %q contains a quote", ErrInvalidValue, p)
	case strings.HasPrefix(p, "-"):
		return fmt.Errorf("%w: prefix %q starts with the negation marker", ErrInvalidValue, p)
	case p == "|" || p == "||":
		return fmt.Errorf("%w: prefix %q is the alternative separator", ErrInvalidValue, p)
	}
	return nil
}

// Prefilter returns whether the literal prefilter is enabled (defaults to true).
func (c *Config) Prefilter() bool {
	if c.Search.Prefilter == nil {
		return true
	}
	return *c.Search.Prefilter
}

// MaxQuery returns the maximum query length in bytes (defaults to 1024).
func (c *Config) MaxQuery() int {
	if c.Limits.MaxQuery == nil {
		return DefaultMaxQuery
	}
	return *c.Limits.MaxQuery
}

// MaxResults returns the result cap for a search (0 means unlimited).
func (c *Config) MaxResults() int {
	if c.Limits.MaxResults == nil {
		return DefaultMaxResults
	}
	return *c.Limits.MaxResults
}

// MatcherSettings converts the matcher overrides for argument.NewRegistry.
func (c *Config) MatcherSettings() map[string]argument.Settings {
	out := make(map[string]argument.Settings, len(c.Search.Matchers))
	for name, m := range c.Search.Matchers {
		var s argument.Settings
		switch m.Mode {
		case ModeNever:
			s.Disabled = true
		case ModePrefix, ModeAlways:
			mode, _ := search.ParseMode(m.Mode)
			s.Mode = &mode
		}
		if m.Prefix != nil {
			p := *m.Prefix
			s.Prefix = &p
		}
		out[name] = s
	}
	return out
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".facet", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.facet/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".facet", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
