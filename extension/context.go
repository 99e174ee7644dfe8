// context.go defines what an extension may reach inside facet.
//
// Extensions receive a Context during Init, after the store is open, so
// registration at init time never needs a database.

package extension

import (
	"database/sql"

	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/service"
)

// Context gives extensions the service, the raw database and the loaded
// configuration.
type Context interface {
	// Service returns the catalog and search service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions create their own tables and leave the core tables alone.
	DB() *sql.DB

	// Config returns the merged user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{svc: svc, db: db, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }
func (c *extContext) DB() *sql.DB              { return c.db }
func (c *extContext) Config() *config.Config   { return c.cfg }
