// stats.go implements aggregate catalog queries.
//
// Design: Every figure comes from COUNT or MIN/MAX queries so stats stay
// cheap on large catalogs; no entry is loaded.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate catalog statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	counts := []struct {
		q    string
		dest *int64
	}{
		{`SELECT COUNT(*) FROM entries`, &st.Entries},
		{`SELECT COUNT(DISTINCT namespace) FROM entries`, &st.Namespaces},
		{`SELECT COUNT(DISTINCT tag) FROM tags`, &st.Tags},
		{`SELECT COUNT(*) FROM tooltips`, &st.TooltipLines},
		{`SELECT COUNT(*) FROM saved_queries`, &st.SavedQueries},
		{`SELECT COUNT(DISTINCT author) FROM entries WHERE author != ''`, &st.Authors},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.q).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM entries`).
		Scan(&st.OldestEntry, &st.NewestEntry)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}
