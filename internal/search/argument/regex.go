package argument

import (
	"regexp"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/search"
)

// regex matches a case-insensitive RE2 expression against the entry's name
// and identifier.
type regex struct {
	base
}

var _ search.Matcher = (*regex)(nil)

// Regex returns the regex matcher (prefix "r/").
func Regex(opts ...Option) search.Matcher {
	m := &regex{base: base{
		name:      NameRegex,
		prefix:    "r/",
		hasPrefix: true,
		style:     search.Style{Colour: "red"},
	}}
	m.apply(opts)
	return m
}

// Prepare compiles the operand. An invalid expression matches nothing.
func (m *regex) Prepare(operand string) search.FilterState {
	re, err := regexp.Compile("(?i)" + operand)
	if err != nil {
		return search.MatchNothing
	}
	return re
}

func (m *regex) Matches(state search.FilterState, e catalog.Entry, _ string) bool {
	re, ok := state.(*regexp.Regexp)
	if !ok {
		return false
	}
	return re.MatchString(e.Name) || re.MatchString(e.ID)
}
