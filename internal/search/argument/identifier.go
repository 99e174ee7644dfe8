package argument

import (
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/glob"
	"github.com/jpl-au/facet/internal/search"
	"golang.org/x/text/cases"
)

// identifier matches entry identifiers. An operand with glob
// metacharacters is matched as a pattern; anything else is a substring.
type identifier struct {
	base
}

var (
	_ search.Matcher        = (*identifier)(nil)
	_ search.LiteralMatcher = (*identifier)(nil)
)

// Identifier returns the identifier matcher (prefix "*").
func Identifier(opts ...Option) search.Matcher {
	m := &identifier{base: base{
		name:      NameIdentifier,
		prefix:    "*",
		hasPrefix: true,
		style:     search.Style{Colour: "magenta"},
	}}
	m.apply(opts)
	return m
}

type globState struct {
	pattern string
	folder  cases.Caser
}

func (m *identifier) Prepare(operand string) search.FilterState {
	if !glob.IsPattern(operand) {
		return newNeedle(operand)
	}
	f := search.NewFolder()
	pattern := f.String(operand)
	if err := glob.Validate(pattern); err != nil {
		return search.MatchNothing
	}
	return &globState{pattern: pattern, folder: f}
}

func (m *identifier) Matches(state search.FilterState, e catalog.Entry, _ string) bool {
	switch s := state.(type) {
	case *needle:
		return s.in(e.ID)
	case *globState:
		ok, err := glob.Match(s.pattern, s.folder.String(e.ID))
		return err == nil && ok
	default:
		return false
	}
}

// Literal returns the folded operand for substring operands. Patterns
// require no literal.
func (m *identifier) Literal(operand string) (string, bool) {
	if glob.IsPattern(operand) {
		return "", false
	}
	return foldedLiteral(operand)
}
