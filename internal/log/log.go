// Package log provides centralised audit logging for facet operations.
// Logs are stored in ~/.facet/log/facet-log.db and track CLI commands and
// MCP tool invocations across projects.
//
// # Fluent API
//
//	log.Event("catalog:add", "add").
//		Author(cmd.Author()).
//		Target(e.ID).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Query(raw).
//		Count(len(res.Entries)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "search:search", "mcp:facet_search"
	Author string // who performed the action
	Action string // verb: search, add, remove, import, save...
	Target string // entry id, saved query name or file the action applies to
	Query  string // raw search string, if any
	Count  int    // entries returned or affected

	// Timing, unix milliseconds. Searches are fast enough that seconds
	// would always read zero.
	Start int64
	End   int64

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder. The source is
// "{extension}:{command}" for CLI commands and "mcp:{tool}" for MCP tools;
// the action is a verb such as "search", "add" or "import".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Target sets what the operation applies to: an entry id, a saved query
// name, or an import file.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Query records the raw search string.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Count records how many entries were returned or affected.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success or failure from err.
//
//	res, err := svc.Search(ctx, raw, opts)
//	log.Event("search:search", "search").Query(raw).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .facet directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
