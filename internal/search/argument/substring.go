package argument

import (
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/search"
)

// substring matches when the folded operand occurs in any of the facet
// values selected from the entry.
type substring struct {
	base
	facet func(e catalog.Entry) []string
}

var (
	_ search.Matcher        = (*substring)(nil)
	_ search.LiteralMatcher = (*substring)(nil)
)

func newSubstring(b base, facet func(catalog.Entry) []string, opts []Option) *substring {
	m := &substring{base: b, facet: facet}
	m.apply(opts)
	return m
}

// Text matches the entry's display name. It has no prefix and claims bare
// text, so it should be registered after the prefixed matchers.
func Text(opts ...Option) search.Matcher {
	return newSubstring(base{name: NameText, mode: search.ModeAlways}, func(e catalog.Entry) []string {
		return []string{e.Name}
	}, opts)
}

// Mod matches the entry's namespace id or namespace display name.
func Mod(opts ...Option) search.Matcher {
	return newSubstring(base{
		name:      NameMod,
		prefix:    "@",
		hasPrefix: true,
		style:     search.Style{Colour: "cyan"},
	}, func(e catalog.Entry) []string {
		return []string{e.Namespace, e.NamespaceName}
	}, opts)
}

// Tooltip matches any tooltip line.
func Tooltip(opts ...Option) search.Matcher {
	return newSubstring(base{
		name:      NameTooltip,
		prefix:    "#",
		hasPrefix: true,
		style:     search.Style{Colour: "yellow"},
	}, func(e catalog.Entry) []string {
		return e.Tooltip
	}, opts)
}

// Tag matches any tag name.
func Tag(opts ...Option) search.Matcher {
	return newSubstring(base{
		name:      NameTag,
		prefix:    "$",
		hasPrefix: true,
		style:     search.Style{Colour: "green"},
	}, func(e catalog.Entry) []string {
		return e.Tags
	}, opts)
}

func (m *substring) Prepare(operand string) search.FilterState {
	return newNeedle(operand)
}

func (m *substring) Matches(state search.FilterState, e catalog.Entry, _ string) bool {
	n := asNeedle(state)
	if n == nil {
		return false
	}
	return n.inAny(m.facet(e))
}

// Literal returns the folded operand; every match contains it.
func (m *substring) Literal(operand string) (string, bool) {
	return foldedLiteral(operand)
}
