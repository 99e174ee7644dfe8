// prefilter.go rejects entries early using an Aho-Corasick automaton over
// the literals that the positive tokens of an alternative require.
//
// A literal is required when its matcher only matches entries that contain
// it in some facet, so an entry whose joined facets lack any required
// literal cannot match the alternative. The automaton reports leftmost
// non-overlapping hits, which can hide an overlapping literal; literals it
// does not report are confirmed with strings.Contains before rejecting.

package search

import (
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"
)

type prefilter struct {
	automaton *ac.AhoCorasick
	literals  []string // index == automaton pattern index
}

func newPrefilter(literals []string) *prefilter {
	seen := make(map[string]bool, len(literals))
	var unique []string
	for _, lit := range literals {
		if seen[lit] {
			continue
		}
		seen[lit] = true
		unique = append(unique, lit)
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		MatchKind: ac.LeftMostLongestMatch,
	})
	automaton := builder.Build(unique)
	return &prefilter{automaton: &automaton, literals: unique}
}

// admits reports whether blob contains every required literal.
func (p *prefilter) admits(blob string) bool {
	found := make([]bool, len(p.literals))
	for _, m := range p.automaton.FindAll(blob) {
		found[m.Pattern()] = true
	}
	for i, lit := range p.literals {
		if !found[i] && !strings.Contains(blob, lit) {
			return false
		}
	}
	return true
}
