// Package repo provides catalog repository initialisation and discovery.
//
// A facet repository is a .facet directory holding one or more SQLite
// catalog databases (facet.db, facet-mods.db, ...), an optional local
// config.yaml and, while an import runs, import.lock.
//
// Discovery mirrors git: starting from the current directory, walk up until
// a .facet directory containing the target database is found, or the
// filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/facet/internal/store"
)

const (
	// Dir is the directory name for the facet repository.
	Dir = ".facet"
	// DBFile is the default catalog database filename.
	DBFile = "facet.db"
	// LockFile guards imports into any catalog of the repository.
	LockFile = "import.lock"
)

// ErrNotInitialised is returned when no facet repository is found.
var ErrNotInitialised = errors.New("facet not initialised (run 'facet init')")

// DBFileName returns the database filename for a catalog name.
// Empty name returns the default "facet.db"; "mods" returns "facet-mods.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "facet-" + name + ".db"
}

// Init creates the repository directory and an empty catalog database.
//
// Parameters:
//   - force: recreate an existing catalog (its entries are lost)
//   - db: catalog name (empty for the default)
//   - local: add the database to .gitignore
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	facetDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(facetDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("catalog %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(facetDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only written on first init so local database markers survive.
	gitignore := filepath.Join(facetDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# facet - catalogs (*.db) are committed; local state is not
config.yaml
` + LockFile + `
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, facetDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}
	return nil
}

// Discover walks up the directory tree looking for the named catalog
// (empty for default) and returns its full path.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	return walkUp(func(dir string) (string, bool) {
		p := filepath.Join(dir, Dir, dbFile)
		_, err := os.Stat(p)
		return p, err == nil
	})
}

// DiscoverDir finds the .facet directory, walking up the tree.
func DiscoverDir() (string, error) {
	return walkUp(func(dir string) (string, bool) {
		p := filepath.Join(dir, Dir)
		info, err := os.Stat(p)
		return p, err == nil && info.IsDir()
	})
}

func walkUp(found func(dir string) (string, bool)) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if p, ok := found(dir); ok {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// LockPath returns the import lock file for the repository that holds
// dbPath.
func LockPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), LockFile)
}

// DBInfo holds catalog database metadata.
type DBInfo struct {
	Name  string `json:"name"`  // Short name (empty for default, "mods" for facet-mods.db)
	File  string `json:"file"`  // Filename
	Path  string `json:"path"`  // Full path
	Local bool   `json:"local"` // True if gitignored
}

// ListDBs returns all catalogs in the .facet directory with their status.
// If dir is empty, the .facet directory is discovered from the working
// directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, fmt.Errorf("discover .facet directory: %w", err)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .facet directory: %w", err)
	}

	var dbs []DBInfo
	for _, f := range files {
		var name string
		switch {
		case f.Name() == DBFile:
		case strings.HasPrefix(f.Name(), "facet-") && strings.HasSuffix(f.Name(), ".db"):
			name = strings.TrimSuffix(strings.TrimPrefix(f.Name(), "facet-"), ".db")
		default:
			continue
		}

		// An unreadable .gitignore is treated as shared.
		ignored, _ := IsIgnored(name, dir)
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  f.Name(),
			Path:  filepath.Join(dir, f.Name()),
			Local: ignored,
		})
	}
	return dbs, nil
}
