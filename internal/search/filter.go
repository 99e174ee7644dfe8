// filter.go evaluates a parsed query against catalog entries.
//
// Combination is conjunctive within an alternative: an entry is kept iff,
// for every claimed token, Matches(...) XOR Inverted holds. Unclaimed tokens
// are always true. Alternatives are combined disjunctively. Filtering is
// stable; surviving entries keep catalog order.

package search

import (
	"context"
	"strings"

	"github.com/jpl-au/facet/internal/catalog"
	"golang.org/x/text/cases"
)

// checkEvery is how many entries are evaluated between context checks.
const checkEvery = 256

// Options configures a filter run.
type Options struct {
	// Prefilter rejects entries that lack a literal some token requires
	// before any matcher runs. It never changes the result.
	Prefilter bool

	// Limit stops the scan after this many matches (0 = no limit).
	Limit int
}

type preparedToken struct {
	tok   Token
	state FilterState
}

type preparedAlt struct {
	tokens []preparedToken
	pre    *prefilter // nil when disabled or no literals
}

func (a preparedAlt) matches(e catalog.Entry) bool {
	for _, pt := range a.tokens {
		m := pt.tok.Matcher
		if m == nil {
			continue
		}
		if m.Matches(pt.state, e, pt.tok.Operand) == pt.tok.Inverted {
			return false
		}
	}
	return true
}

// Evaluator holds the filter states of one query invocation. It is not
// safe for concurrent use; each goroutine filtering with the same Query
// needs its own Evaluator.
type Evaluator struct {
	alts   []preparedAlt
	folder cases.Caser
}

// Prepare allocates fresh filter states for every token of q.
func (q Query) Prepare(opts Options) *Evaluator {
	ev := &Evaluator{folder: NewFolder()}
	for _, alt := range q.Alternatives {
		pa := preparedAlt{tokens: make([]preparedToken, 0, len(alt))}
		var literals []string
		for _, tok := range alt {
			pt := preparedToken{tok: tok}
			if tok.Matcher != nil {
				pt.state = tok.Matcher.Prepare(tok.Operand)
				if lit, ok := literalOf(tok); ok {
					literals = append(literals, lit)
				}
			}
			pa.tokens = append(pa.tokens, pt)
		}
		if opts.Prefilter && len(literals) > 0 {
			pa.pre = newPrefilter(literals)
		}
		ev.alts = append(ev.alts, pa)
	}
	return ev
}

// literalOf returns the literal a non-inverted token requires, if its
// matcher can name one.
func literalOf(tok Token) (string, bool) {
	if tok.Inverted {
		return "", false
	}
	lm, ok := tok.Matcher.(LiteralMatcher)
	if !ok {
		return "", false
	}
	lit, ok := lm.Literal(tok.Operand)
	if !ok || lit == "" {
		return "", false
	}
	return lit, true
}

// Match reports whether e satisfies any alternative of the query. A query
// with no alternatives matches everything.
func (ev *Evaluator) Match(e catalog.Entry) bool {
	if len(ev.alts) == 0 {
		return true
	}

	var blob string
	haveBlob := false
	for _, alt := range ev.alts {
		if alt.pre != nil {
			if !haveBlob {
				blob = ev.blob(e)
				haveBlob = true
			}
			if !alt.pre.admits(blob) {
				continue
			}
		}
		if alt.matches(e) {
			return true
		}
	}
	return false
}

// blob joins the entry's folded facets so one automaton pass covers them.
func (ev *Evaluator) blob(e catalog.Entry) string {
	return ev.folder.String(strings.Join(e.Facets(), "\x00"))
}

// Filter returns the entries that satisfy q, in their original order. An
// empty query returns a copy of entries.
func Filter(entries []catalog.Entry, q Query) []catalog.Entry {
	out, _ := FilterContext(context.Background(), entries, q, Options{})
	return out
}

// FilterContext is Filter with cancellation and options. The context is
// checked between entry evaluations; on cancellation the context error is
// returned and the partial result discarded.
func FilterContext(ctx context.Context, entries []catalog.Entry, q Query, opts Options) ([]catalog.Entry, error) {
	if q.Empty() && opts.Limit <= 0 {
		out := make([]catalog.Entry, len(entries))
		copy(out, entries)
		return out, nil
	}

	ev := q.Prepare(opts)
	out := make([]catalog.Entry, 0)
	for i, e := range entries {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !ev.Match(e) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}
