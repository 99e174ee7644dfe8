// grammar.go implements the prefix grammar that decides whether a matcher
// claims a search term.
//
// A matcher with prefix p claims a term t when t starts with "-"+p or p+"-"
// (inverted) or with p (normal). Both leading and trailing negation markers
// are accepted. Results are values rather than errors: a grammar mismatch is
// the normal outcome for most matchers and is simply tried against the next.

package search

import "strings"

// Span is a half-open byte range [Start, End) within a string.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.End <= s.Start }

// ApplicableResult is the outcome of applying a matcher's prefix grammar to a
// term. Exactly one of applicable or not-applicable holds; an applicable
// result always carries operand text, which may be empty.
type ApplicableResult struct {
	applicable  bool
	operand     string
	inverted    bool
	grammar     Span
	usesGrammar bool
}

// NotApplicable returns the result for a term the grammar does not claim.
func NotApplicable() ApplicableResult {
	return ApplicableResult{}
}

func apply(operand string) ApplicableResult {
	return ApplicableResult{applicable: true, operand: operand}
}

func applyInverted(operand string) ApplicableResult {
	return ApplicableResult{applicable: true, operand: operand, inverted: true}
}

// withGrammar records the consumed grammar span [start, end).
func (r ApplicableResult) withGrammar(start, end int) ApplicableResult {
	r.grammar = Span{Start: start, End: end}
	r.usesGrammar = true
	return r
}

// NotUsingGrammar returns a copy of r with no grammar span. Used when a
// matcher claims bare text through the always-match fallback.
func (r ApplicableResult) NotUsingGrammar() ApplicableResult {
	r.grammar = Span{}
	r.usesGrammar = false
	return r
}

// Applicable reports whether the grammar claimed the term.
func (r ApplicableResult) Applicable() bool { return r.applicable }

// Operand returns the term text left after the grammar is removed.
func (r ApplicableResult) Operand() string { return r.operand }

// Inverted reports whether a negation marker was present.
func (r ApplicableResult) Inverted() bool { return r.inverted }

// Grammar returns the consumed grammar span within the term and whether the
// grammar was used at all.
func (r ApplicableResult) Grammar() (Span, bool) { return r.grammar, r.usesGrammar }

// CheckPrefix applies the grammar for prefix p to text t. The comparison is
// case-sensitive.
func CheckPrefix(t, p string) ApplicableResult {
	switch {
	case strings.HasPrefix(t, "-"+p):
		return applyInverted(t[1+len(p):]).withGrammar(0, len(p)+1)
	case strings.HasPrefix(t, p+"-"):
		return applyInverted(t[1+len(p):]).withGrammar(0, len(p)+1)
	case strings.HasPrefix(t, p):
		return apply(t[len(p):]).withGrammar(0, len(p))
	}
	return NotApplicable()
}

// CheckApplicable decides whether m claims text on its own: first through
// its prefix, then, for ModeAlways matchers, as bare text with the empty
// prefix. A matcher without a prefix can only claim text through the
// fallback.
func CheckApplicable(m Matcher, text string) ApplicableResult {
	if r := checkMatcherPrefix(m, text); r.Applicable() {
		return r
	}
	if m.Mode() == ModeAlways {
		return checkFallback(text)
	}
	return NotApplicable()
}

func checkMatcherPrefix(m Matcher, text string) ApplicableResult {
	p, ok := m.Prefix()
	if !ok {
		return NotApplicable()
	}
	return CheckPrefix(text, p)
}

// checkFallback claims the whole term as bare text. A leading "-" still
// inverts the term, but no grammar span is reported.
func checkFallback(text string) ApplicableResult {
	return CheckPrefix(text, "").NotUsingGrammar()
}
