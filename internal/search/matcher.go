// Package search implements an incremental search engine over a catalog of
// typed entries.
//
// A raw query is split into terms, each term is claimed by one registered
// Matcher through a small prefix grammar, and the resulting tokens are
// evaluated against catalog entries:
//
//	reg := search.NewRegistry()
//	reg.Register(argument.Mod())
//	reg.Register(argument.Text())
//
//	q := search.Parse("@minecraft -stick", reg)
//	hits := search.Filter(cat.Snapshot(), q)
//
// Tokens within a query are combined with AND. A bare "|" (or "||") separates
// alternatives, which are combined with OR. Nothing in the engine fails a
// search: malformed operands match nothing and unclaimed terms are ignored.
package search

import (
	"strings"

	"github.com/jpl-au/facet/internal/catalog"
)

// Mode controls when a matcher applies to a term.
type Mode int

const (
	// ModePrefix applies only when the matcher's prefix is present.
	ModePrefix Mode = iota
	// ModeAlways additionally claims bare text with no prefix.
	ModeAlways
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeAlways:
		return "always"
	default:
		return "unknown"
	}
}

// ParseMode parses a configuration mode name.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "prefix":
		return ModePrefix, true
	case "always":
		return ModeAlways, true
	}
	return 0, false
}

// Style describes how a host should highlight the grammar a matcher consumed.
type Style struct {
	Colour    string `json:"colour,omitempty"` // Named colour: red, green, yellow, blue, magenta, cyan, gray
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

// IsZero reports whether the style adds no highlighting.
func (s Style) IsZero() bool { return s == Style{} }

// FilterState is per-query scratch data produced by Matcher.Prepare and
// threaded through Matcher.Matches. A state belongs to one query
// invocation and is never shared between concurrent filters.
type FilterState any

// Matcher is one searchable facet (name, namespace, tooltip, tag...).
//
// Prepare parses the operand once per query and must not fail: a malformed
// operand yields a state that matches nothing. Matches must not modify the
// entry; it may memoise into the state.
type Matcher interface {
	// Name returns the unique registry name.
	Name() string

	// Prefix returns the grammar prefix, or false if the matcher has none
	// and can only claim text through the always-match fallback.
	Prefix() (string, bool)

	// Style returns the highlight style for the consumed grammar.
	Style() Style

	// Mode returns when the matcher applies.
	Mode() Mode

	// Prepare builds the filter state for one operand.
	Prepare(operand string) FilterState

	// Matches reports whether e satisfies the operand.
	Matches(state FilterState, e catalog.Entry, operand string) bool
}

// LiteralMatcher is implemented by matchers whose successful match implies
// that a case-folded literal occurs in one of the entry's facets. The
// literal feeds the prefilter; returning false opts the operand out.
type LiteralMatcher interface {
	Literal(operand string) (string, bool)
}

// nothing is the state a matcher returns for an operand it cannot use.
type nothing struct{}

// MatchNothing is a filter state that no entry satisfies. Matchers return
// it from Prepare for operands that fail to parse.
var MatchNothing FilterState = nothing{}

// IsNothing reports whether state is MatchNothing.
func IsNothing(state FilterState) bool {
	_, ok := state.(nothing)
	return ok
}
