// log_storage.go persists audit log entries in SQLite.
//
// The project column holds a hash of the repository directory so logs from
// many projects can be aggregated without recording their paths.
//
// Design: Errors during logging are reported to stderr and otherwise
// ignored. A search must succeed even if it cannot be recorded.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start_ms, end_ms, project, source, author, action, target, query,
		                 count, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Target), nilIfEmpty(e.Query), e.Count,
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "facet: audit log write failed: %v\n", err)
	}
}

// dbPathFunc returns the database path. Tests override it.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Containers without a home directory log beside the project.
		return filepath.Join(".facet", "log", "facet-log.db")
	}
	return filepath.Join(home, ".facet", "log", "facet-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a 64-bit project identifier from the directory path.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			start_ms INTEGER NOT NULL,
			end_ms   INTEGER NOT NULL,
			project  TEXT NOT NULL,
			source   TEXT NOT NULL,
			author   TEXT,
			action   TEXT NOT NULL,
			target   TEXT,
			query    TEXT,
			count    INTEGER NOT NULL DEFAULT 0,
			success  INTEGER NOT NULL,
			error    TEXT,
			detail   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start_ms);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings so they are stored as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
