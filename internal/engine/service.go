// Package engine implements service.Service on top of a SQLite catalog
// store. It owns the matcher registry built from configuration and runs
// searches against a catalog snapshot loaded from the store.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/search/argument"
	"github.com/jpl-au/facet/internal/service"
	"github.com/jpl-au/facet/internal/store"
)

// DefaultAuthor is recorded when a write names no author.
const DefaultAuthor = "unknown"

// Service provides catalog and search operations backed by a Store.
type Service struct {
	store    *store.SQLiteStore
	dbPath   string
	settings atomic.Pointer[settings] // swapped whole by ReloadConfig
	extCtx   extension.Context        // for firing events to extensions
}

// settings holds everything a search reads from config. A value is never
// modified after it is published; each call loads it once.
type settings struct {
	reg        *search.Registry
	prefilter  bool
	maxQuery   int
	maxResults int
}

var _ service.Service = (*Service)(nil)

// New creates a Service, discovering the catalog by walking up the
// directory tree. The db parameter names the catalog (empty for default).
// Returns repo.ErrNotInitialised if no matching catalog is found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(dbPath, cfg)
}

// NewIn opens the named catalog in the repository at dir without walking
// the directory tree.
func NewIn(dir, db string) (*Service, error) {
	dbPath := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: %s", repo.ErrNotInitialised, dbPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(dbPath, cfg)
}

// Open creates a Service for the catalog database at dbPath using cfg.
func Open(dbPath string, cfg *config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	svc := &Service{store: s, dbPath: dbPath}
	svc.apply(cfg)
	return svc, nil
}

// Init initialises a new catalog. If dir is empty, uses the current
// directory. If local is true, the catalog is added to .gitignore.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

func (s *Service) apply(cfg *config.Config) {
	s.settings.Store(&settings{
		reg:        argument.NewRegistry(cfg.MatcherSettings()),
		prefilter:  cfg.Prefilter(),
		maxQuery:   cfg.MaxQuery(),
		maxResults: cfg.MaxResults(),
	})
}

// ReloadConfig rebuilds the matcher registry and limits from disk. Call it
// after changing config so a running server picks up the new settings.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.apply(cfg)
	return nil
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/root.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// fireEvent notifies every extension implementing EventHandler. Handler
// errors are logged, not returned.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		h, ok := ext.(extension.EventHandler)
		if !ok {
			continue
		}
		if err := h.HandleEvent(s.extCtx, e); err != nil {
			log.Event("event:error", "error").
				Target(e.EventTarget()).
				Detail("ext", ext.Name()).
				Detail("event", string(e.EventType())).
				Write(err)
		}
	}
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the catalog database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Checkpoint flushes the WAL to the main database file, useful before
// committing or copying the catalog.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}

// Stats returns aggregate catalog statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}
