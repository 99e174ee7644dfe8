// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// This is the only file that imports the SQLite driver.
//
// Design: WAL mode with busy timeout lets the MCP server read while the CLI
// imports. The 5-second busy timeout prevents "database is locked" errors
// without waiting forever on stuck connections.

package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// NORMAL is safe against corruption under WAL; only the last
		// transaction can be lost on an OS crash.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// New wraps an already open database. Open should be preferred; New exists
// for callers that manage the connection themselves.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Checkpoint writes all WAL data back to the main database file and
// truncates the WAL. Called when the MCP server shuts down.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Tx executes fn within a database transaction. If fn returns an error the
// transaction is rolled back; otherwise it is committed. Context
// cancellation aborts the transaction at the next database call.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `DELETE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
