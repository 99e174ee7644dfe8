// query.go renders queries: highlighted raw text, explain tables, the
// matcher registry and saved queries.

package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/store"
)

const reset = "\033[0m"

var colours = map[string]string{
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"gray":    "90",
	"grey":    "90",
}

// ANSI returns the escape sequence for a style, or "" for the zero style.
func ANSI(s search.Style) string {
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if c, ok := colours[strings.ToLower(s.Colour)]; ok {
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return ""
	}
	return "\033[" + strings.Join(codes, ";") + "m"
}

// Highlight returns raw with each highlight span wrapped in its style.
// Spans must be in ascending order and not overlap, as Query.Highlights
// returns them; spans outside raw are ignored.
func Highlight(raw string, hs []search.Highlight) string {
	var b strings.Builder
	pos := 0
	for _, h := range hs {
		if h.Span.Start < pos || h.Span.End > len(raw) || h.Span.Empty() {
			continue
		}
		code := ANSI(h.Style)
		if code == "" {
			continue
		}
		b.WriteString(raw[pos:h.Span.Start])
		b.WriteString(code + raw[h.Span.Start:h.Span.End] + reset)
		pos = h.Span.End
	}
	b.WriteString(raw[pos:])
	return b.String()
}

// Explain returns a markdown table describing how each term of q was
// bound. Alternatives are numbered from 1.
func Explain(q search.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Query\n\n`%s`\n\n", q.Raw)
	if q.Empty() {
		b.WriteString("Empty query: every entry matches.\n")
		return b.String()
	}

	b.WriteString("| Alt | Term | Matcher | Operand | Inverted | Grammar |\n")
	b.WriteString("|-----|------|---------|---------|----------|---------|\n")
	for i, alt := range q.Alternatives {
		for _, t := range alt {
			matcher := t.MatcherName()
			if matcher == "" {
				matcher = "(ignored)"
			}
			grammar := "-"
			if t.UsesGrammar {
				grammar = fmt.Sprintf("`%s` [%d,%d)", q.Raw[t.Grammar.Start:t.Grammar.End], t.Grammar.Start, t.Grammar.End)
			} else if t.Matcher != nil {
				grammar = "fallback"
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %v | %s |\n",
				i+1, cell(t.Text), matcher, cell(t.Operand), t.Inverted, grammar)
		}
	}
	return b.String()
}

// cell quotes text for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return `""`
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

// Term is the machine-readable form of one bound query term.
type Term struct {
	Alternative int          `json:"alternative"`
	Text        string       `json:"text"`
	Matcher     string       `json:"matcher,omitempty"`
	Operand     string       `json:"operand"`
	Inverted    bool         `json:"inverted"`
	Fallback    bool         `json:"fallback,omitempty"`
	Grammar     *search.Span `json:"grammar,omitempty"`
}

// Terms flattens the alternatives of q into terms for JSON output.
func Terms(q search.Query) []Term {
	out := []Term{}
	for i, alt := range q.Alternatives {
		for _, t := range alt {
			term := Term{
				Alternative: i + 1,
				Text:        t.Text,
				Matcher:     t.MatcherName(),
				Operand:     t.Operand,
				Inverted:    t.Inverted,
				Fallback:    t.Matcher != nil && !t.UsesGrammar,
			}
			if t.UsesGrammar {
				g := t.Grammar
				term.Grammar = &g
			}
			out = append(out, term)
		}
	}
	return out
}

// MatcherInfo describes a registered matcher for JSON output.
type MatcherInfo struct {
	Name   string       `json:"name"`
	Prefix string       `json:"prefix,omitempty"`
	Mode   string       `json:"mode"`
	Style  search.Style `json:"style"`
}

// MatcherInfos describes ms in registration order.
func MatcherInfos(ms []search.Matcher) []MatcherInfo {
	out := make([]MatcherInfo, len(ms))
	for i, m := range ms {
		p, _ := m.Prefix()
		out[i] = MatcherInfo{Name: m.Name(), Prefix: p, Mode: m.Mode().String(), Style: m.Style()}
	}
	return out
}

// Matchers prints the matcher registry in registration order.
func Matchers(w io.Writer, ms []search.Matcher) error {
	fmt.Fprintf(w, "%-12s  %-8s  %-7s  %s\n", "NAME", "PREFIX", "MODE", "COLOUR")
	for _, m := range ms {
		prefix := "-"
		if p, ok := m.Prefix(); ok {
			prefix = p
		}
		colour := m.Style().Colour
		if colour == "" {
			colour = "-"
		}
		fmt.Fprintf(w, "%-12s  %-8s  %-7s  %s\n", m.Name(), prefix, m.Mode(), colour)
	}
	return nil
}

// SavedQueries prints saved queries with their last update.
func SavedQueries(w io.Writer, qs []store.SavedQuery) error {
	width := 0
	for _, q := range qs {
		width = max(width, len(q.Name))
	}
	for _, q := range qs {
		t := time.Unix(q.UpdatedAt, 0)
		fmt.Fprintf(w, "%-*s  %s  %-12s  %s\n", width, q.Name, t.Format("2006-01-02 15:04"), q.Author, q.Query)
	}
	return nil
}
