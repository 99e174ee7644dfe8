// entries.go implements catalog reads and writes.
//
// An entry is spread over three tables: entries holds the scalar fields,
// tooltips and tags hold the list fields. Reads load each table with one
// query and stitch rows together by seq, so listing the whole catalog costs
// three queries regardless of size.
//
// Design: Writes run in a single transaction. Adding a batch either stores
// every entry or none, which keeps imports repeatable after a failure.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/validate"
)

const entryColumns = `seq, id, name, namespace, namespace_name`

// row is an entry plus its storage sequence number.
type row struct {
	seq   int64
	entry catalog.Entry
}

func scanRow(sc scanner) (row, error) {
	var r row
	err := sc.Scan(&r.seq, &r.entry.ID, &r.entry.Name, &r.entry.Namespace, &r.entry.NamespaceName)
	return r, err
}

// Entries returns entries in insertion order.
func (s *SQLiteStore) Entries(ctx context.Context, namespace string) ([]catalog.Entry, error) {
	where, args := ``, []any(nil)
	if namespace != "" {
		where, args = `namespace = ?`, []any{namespace}
	}
	return s.load(ctx, where, args...)
}

// Entry returns the entry with the given id.
func (s *SQLiteStore) Entry(ctx context.Context, id string) (*catalog.Entry, error) {
	entries, err := s.load(ctx, `id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &entries[0], nil
}

// load reads entries matching the where clause (empty for all) together
// with their tooltips and tags.
func (s *SQLiteStore) load(ctx context.Context, where string, args ...any) ([]catalog.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM entries`
	sub := `SELECT seq FROM entries`
	if where != "" {
		q += ` WHERE ` + where
		sub += ` WHERE ` + where
	}
	q += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	index := make(map[int64]int)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		index[r.seq] = len(entries)
		entries = append(entries, r.entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	err = s.eachChild(ctx, `SELECT entry, text FROM tooltips WHERE entry IN (`+sub+`) ORDER BY entry, line`, args, func(seq int64, v string) {
		if i, ok := index[seq]; ok {
			entries[i].Tooltip = append(entries[i].Tooltip, v)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("list tooltips: %w", err)
	}

	err = s.eachChild(ctx, `SELECT entry, tag FROM tags WHERE entry IN (`+sub+`) ORDER BY entry, pos`, args, func(seq int64, v string) {
		if i, ok := index[seq]; ok {
			entries[i].Tags = append(entries[i].Tags, v)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return entries, nil
}

// eachChild runs a two-column (seq, text) query and calls fn per row.
func (s *SQLiteStore) eachChild(ctx context.Context, q string, args []any, fn func(int64, string)) error {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seq int64
		var v string
		if err := rows.Scan(&seq, &v); err != nil {
			return err
		}
		fn(seq, v)
	}
	return rows.Err()
}

// Exists reports whether an entry with the id is stored.
func (s *SQLiteStore) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", id, err)
	}
	return n > 0, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Namespaces lists namespaces ordered by name.
func (s *SQLiteStore) Namespaces(ctx context.Context) ([]Namespace, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT namespace, MAX(namespace_name), COUNT(*)
		FROM entries GROUP BY namespace ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	defer rows.Close()

	var out []Namespace
	for rows.Next() {
		var ns Namespace
		if err := rows.Scan(&ns.Name, &ns.DisplayName, &ns.Entries); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

// Add normalises, validates and stores entries in one transaction.
// An existing id fails the whole batch with ErrAlreadyExists unless
// opts.Replace is set, in which case the stored entry is overwritten in
// place and keeps its position.
func (s *SQLiteStore) Add(ctx context.Context, entries []catalog.Entry, opts AddOptions) (int, error) {
	batch := make([]catalog.Entry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		e = e.Normalise()
		if err := validate.Entry(e); err != nil {
			return 0, err
		}
		if seen[e.ID] {
			return 0, fmt.Errorf("%w: %s given twice", ErrAlreadyExists, e.ID)
		}
		seen[e.ID] = true
		batch = append(batch, e)
	}

	now := time.Now().Unix()
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, e := range batch {
			var seq int64
			err := tx.QueryRowContext(ctx, `SELECT seq FROM entries WHERE id = ?`, e.ID).Scan(&seq)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				res, err := tx.ExecContext(ctx, `INSERT INTO entries (id, name, namespace, namespace_name, author, created_at)
					VALUES (?, ?, ?, ?, ?, ?)`,
					e.ID, e.Name, e.Namespace, e.NamespaceName, opts.Author, now)
				if err != nil {
					return fmt.Errorf("insert %s: %w", e.ID, err)
				}
				if seq, err = res.LastInsertId(); err != nil {
					return fmt.Errorf("insert %s: %w", e.ID, err)
				}
			case err != nil:
				return fmt.Errorf("lookup %s: %w", e.ID, err)
			case !opts.Replace:
				return fmt.Errorf("%w: %s", ErrAlreadyExists, e.ID)
			default:
				_, err := tx.ExecContext(ctx, `UPDATE entries SET name = ?, namespace = ?, namespace_name = ?, author = ?
					WHERE seq = ?`, e.Name, e.Namespace, e.NamespaceName, opts.Author, seq)
				if err != nil {
					return fmt.Errorf("update %s: %w", e.ID, err)
				}
				if err := deleteChildren(ctx, tx, seq); err != nil {
					return fmt.Errorf("update %s: %w", e.ID, err)
				}
			}
			if err := insertChildren(ctx, tx, seq, e); err != nil {
				return fmt.Errorf("insert %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, seq int64, e catalog.Entry) error {
	for i, line := range e.Tooltip {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tooltips (entry, line, text) VALUES (?, ?, ?)`, seq, i, line); err != nil {
			return fmt.Errorf("tooltip: %w", err)
		}
	}
	for i, tag := range e.Tags {
		// Repeated tags collapse to the first occurrence.
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags (entry, pos, tag) VALUES (?, ?, ?)`, seq, i, tag); err != nil {
			return fmt.Errorf("tag: %w", err)
		}
	}
	return nil
}

func deleteChildren(ctx context.Context, tx *sql.Tx, seq int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tooltips WHERE entry = ?`, seq); err != nil {
		return fmt.Errorf("delete tooltips: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE entry = ?`, seq); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	return nil
}

// Remove deletes an entry and its tooltips and tags. Returns ErrNotFound if
// no entry has the id.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var seq int64
		err := tx.QueryRowContext(ctx, `SELECT seq FROM entries WHERE id = ?`, id).Scan(&seq)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("lookup %s: %w", id, err)
		}
		if err := deleteChildren(ctx, tx, seq); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE seq = ?`, seq); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		return nil
	})
}
