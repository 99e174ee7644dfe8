// search.go runs queries against the stored catalog.
//
// Every search loads a fresh catalog snapshot from the store, so a
// long-running server sees entries added by other processes. The snapshot
// is private to the call; concurrent searches share nothing but the
// immutable registry.

package engine

import (
	"context"
	"fmt"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/diff"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/service"
	"github.com/jpl-au/facet/internal/validate"
)

// Explain validates and parses a query without scanning the catalog.
func (s *Service) Explain(query string) (search.Query, error) {
	return s.settings.Load().parse(query)
}

func (st *settings) parse(query string) (search.Query, error) {
	if err := validate.Query(query, st.maxQuery); err != nil {
		return search.Query{}, err
	}
	return search.Parse(query, st.reg), nil
}

// Matchers returns the registered matchers in registration order.
func (s *Service) Matchers() []search.Matcher {
	return s.settings.Load().reg.All()
}

// Search filters the stored catalog with query.
func (s *Service) Search(ctx context.Context, query string, opts service.SearchOptions) (*service.Result, error) {
	st := s.settings.Load()
	q, err := st.parse(query)
	if err != nil {
		return nil, err
	}
	entries, err := s.snapshot(ctx, opts.Namespace)
	if err != nil {
		return nil, err
	}

	limit := st.limit(opts.Limit)
	fopts := search.Options{Prefilter: st.prefilter && !opts.NoPrefilter}
	if limit > 0 {
		// One extra match tells a full page from a truncated one.
		fopts.Limit = limit + 1
	}
	out, err := search.FilterContext(ctx, entries, q, fopts)
	if err != nil {
		return nil, err
	}

	res := &service.Result{
		Query:      q,
		Highlights: q.Highlights(),
		Scanned:    len(entries),
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
		res.Truncated = true
	}
	res.Entries = out
	return res, nil
}

// limit resolves the effective result cap: the smaller non-zero value of
// the requested limit and limits.max_results.
func (st *settings) limit(requested int) int {
	switch {
	case requested <= 0:
		return st.maxResults
	case st.maxResults > 0 && requested > st.maxResults:
		return st.maxResults
	default:
		return requested
	}
}

// snapshot loads the stored entries into a catalog and returns its
// snapshot.
func (s *Service) snapshot(ctx context.Context, namespace string) ([]catalog.Entry, error) {
	entries, err := s.store.Entries(ctx, namespace)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(entries...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat.Snapshot(), nil
}

// Diff compares the full result sets of two queries.
func (s *Service) Diff(ctx context.Context, q1, q2 string) (diff.Result, error) {
	st := s.settings.Load()
	p1, err := st.parse(q1)
	if err != nil {
		return diff.Result{}, err
	}
	p2, err := st.parse(q2)
	if err != nil {
		return diff.Result{}, err
	}
	entries, err := s.snapshot(ctx, "")
	if err != nil {
		return diff.Result{}, err
	}

	opts := search.Options{Prefilter: st.prefilter}
	r1, err := search.FilterContext(ctx, entries, p1, opts)
	if err != nil {
		return diff.Result{}, err
	}
	r2, err := search.FilterContext(ctx, entries, p2, opts)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(ids(r1), ids(r2), label(q1), label(q2)), nil
}

func ids(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func label(q string) string {
	if q == "" {
		return `""`
	}
	return q
}
