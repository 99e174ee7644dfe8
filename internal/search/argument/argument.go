// Package argument provides the default search matchers: bare text, mod
// (namespace), tooltip, tag, identifier glob and regex.
//
// Each constructor accepts options so that configuration can move a
// matcher's prefix or change its mode without new types:
//
//	reg.Register(argument.Mod(argument.WithPrefix("@mod:")))
package argument

import (
	"strings"

	"github.com/jpl-au/facet/internal/search"
	"golang.org/x/text/cases"
)

// Default matcher names.
const (
	NameText       = "text"
	NameMod        = "mod"
	NameTooltip    = "tooltip"
	NameTag        = "tag"
	NameIdentifier = "identifier"
	NameRegex      = "regex"
)

// base carries the definition shared by every matcher.
type base struct {
	name      string
	prefix    string
	hasPrefix bool
	style     search.Style
	mode      search.Mode
}

func (b *base) Name() string           { return b.name }
func (b *base) Style() search.Style    { return b.style }
func (b *base) Mode() search.Mode      { return b.mode }
func (b *base) Prefix() (string, bool) { return b.prefix, b.hasPrefix }

func (b *base) apply(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Option adjusts a matcher definition at construction.
type Option func(*base)

// WithPrefix sets the grammar prefix.
func WithPrefix(p string) Option {
	return func(b *base) {
		b.prefix = p
		b.hasPrefix = true
	}
}

// WithoutPrefix removes the grammar prefix. Such a matcher only applies
// through the always-match fallback.
func WithoutPrefix() Option {
	return func(b *base) {
		b.prefix = ""
		b.hasPrefix = false
	}
}

// WithMode sets the search mode.
func WithMode(m search.Mode) Option {
	return func(b *base) { b.mode = m }
}

// WithStyle sets the highlight style.
func WithStyle(s search.Style) Option {
	return func(b *base) { b.style = s }
}

// needle is the filter state of the substring matchers: the folded operand
// and the folder used for the entry side. The folder is stateful, which is
// fine because a state never outlives one query invocation.
type needle struct {
	text   string
	folder cases.Caser
}

func newNeedle(operand string) *needle {
	f := search.NewFolder()
	return &needle{text: f.String(operand), folder: f}
}

// in reports whether the needle occurs in s after folding.
func (n *needle) in(s string) bool {
	if n.text == "" {
		return true
	}
	return strings.Contains(n.folder.String(s), n.text)
}

// inAny reports whether the needle occurs in any of values. An empty
// needle matches every entry, including one with no values.
func (n *needle) inAny(values []string) bool {
	if n.text == "" {
		return true
	}
	for _, v := range values {
		if n.in(v) {
			return true
		}
	}
	return false
}

// asNeedle recovers a needle state, or nil for MatchNothing and foreign
// states.
func asNeedle(state search.FilterState) *needle {
	n, _ := state.(*needle)
	return n
}

// foldedLiteral is the LiteralMatcher implementation shared by the
// substring matchers.
func foldedLiteral(operand string) (string, bool) {
	lit := search.Fold(operand)
	return lit, lit != ""
}
