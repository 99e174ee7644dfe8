// queries.go implements saved query persistence.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/facet/internal/validate"
)

// SaveQuery creates or replaces a named query. The creation time of an
// existing query is kept.
func (s *SQLiteStore) SaveQuery(ctx context.Context, name, query, author string) error {
	if err := validate.QueryName(name); err != nil {
		return err
	}
	if err := validate.Query(query, 0); err != nil {
		return err
	}

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO saved_queries (name, query, author, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET query = excluded.query, author = excluded.author, updated_at = excluded.updated_at`,
		name, query, author, now, now)
	if err != nil {
		return fmt.Errorf("save query %s: %w", name, err)
	}
	return nil
}

func scanQuery(sc scanner) (SavedQuery, error) {
	var q SavedQuery
	err := sc.Scan(&q.Name, &q.Query, &q.Author, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// SavedQuery returns the named query.
func (s *SQLiteStore) SavedQuery(ctx context.Context, name string) (*SavedQuery, error) {
	q, err := scanQuery(s.db.QueryRowContext(ctx, `SELECT name, query, author, created_at, updated_at
		FROM saved_queries WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("scan query: %w", err)
	}
	return &q, nil
}

// SavedQueries returns all saved queries ordered by name.
func (s *SQLiteStore) SavedQueries(ctx context.Context) ([]SavedQuery, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, query, author, created_at, updated_at
		FROM saved_queries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var out []SavedQuery
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// DeleteQuery removes the named query.
func (s *SQLiteStore) DeleteQuery(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_queries WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete query %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete query %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrQueryNotFound, name)
	}
	return nil
}
