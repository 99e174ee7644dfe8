// Package core provides the core extension for facet.
// It registers commands: init, config, serve, guide, version, matchers,
// db, stats.
package core

import (
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service // set by Init; nil for storeless commands
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service for stats.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the repository and configuration commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
		newMatchersCmd(),
		newDBCmd(),
		e.newStatsCmd(),
	}
}

// MCPTools returns nil; the core tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: the MCP server opens the catalog itself and may start without one.
// matchers: built from config alone.
// db: manages gitignore entries, not database contents.
// version: build info only.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "matchers", "db", "version"}
}
