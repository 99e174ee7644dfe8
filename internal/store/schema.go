// schema.go embeds the catalog schema and runs it against a database.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes). Child tables (tooltips,
// tags) follow entries so their references resolve.
//
// Extensions can create their own embedded schemas:
//
//	//go:embed sql/*.sql
//	var extensionSchemas embed.FS
//
//	func (e *Extension) Init(ctx extension.Context) error {
//	    if err := store.ExecEmbedded(ctx.DB(), extensionSchemas, "sql"); err != nil {
//	        return err
//	    }
//	    return nil
//	}

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrAlreadyExists is returned when adding an entry whose id is taken
	// and replacement was not requested.
	ErrAlreadyExists = errors.New("entry already exists")
	// ErrQueryNotFound indicates no saved query has the requested name.
	ErrQueryNotFound = errors.New("saved query not found")
)

// ExecEmbedded executes the .sql files in dir of an embedded filesystem in
// name order. Each file should use IF NOT EXISTS so Init stays idempotent.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}
		name := dir + "/" + f.Name()
		data, err := fsys.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", f.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
