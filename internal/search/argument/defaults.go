package argument

import "github.com/jpl-au/facet/internal/search"

// Settings overrides the definition of a default matcher.
type Settings struct {
	Prefix   *string      // nil keeps the default; "" removes the prefix
	Mode     *search.Mode // nil keeps the default
	Disabled bool         // leave the matcher out of the registry
}

func (s Settings) options() []Option {
	var opts []Option
	if s.Prefix != nil {
		if *s.Prefix == "" {
			opts = append(opts, WithoutPrefix())
		} else {
			opts = append(opts, WithPrefix(*s.Prefix))
		}
	}
	if s.Mode != nil {
		opts = append(opts, WithMode(*s.Mode))
	}
	return opts
}

// constructors lists the default matchers in registration order. Prefixed
// matchers come first; text claims whatever they leave.
var constructors = []struct {
	name string
	new  func(...Option) search.Matcher
}{
	{NameMod, Mod},
	{NameTooltip, Tooltip},
	{NameTag, Tag},
	{NameIdentifier, Identifier},
	{NameRegex, Regex},
	{NameText, Text},
}

// Names returns the default matcher names in registration order.
func Names() []string {
	names := make([]string, len(constructors))
	for i, c := range constructors {
		names[i] = c.name
	}
	return names
}

// Defaults returns the default matchers with settings applied, in
// registration order. Settings for unknown names are ignored.
func Defaults(settings map[string]Settings) []search.Matcher {
	var out []search.Matcher
	for _, c := range constructors {
		s := settings[c.name]
		if s.Disabled {
			continue
		}
		out = append(out, c.new(s.options()...))
	}
	return out
}

// NewRegistry returns a registry holding the default matchers.
func NewRegistry(settings map[string]Settings) *search.Registry {
	reg := search.NewRegistry()
	for _, m := range Defaults(settings) {
		reg.Register(m)
	}
	return reg
}
