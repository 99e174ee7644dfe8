// Package catalog provides the catalog extension for managing entries.
// Registers commands: add, rm, ls, show, import, export.
package catalog

import (
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the catalog extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "catalog".
func (e *Extension) Name() string { return "catalog" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the entry management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newAddCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		e.newShowCmd(),
		newImportCmd(),
		newExportCmd(),
	}
}

// MCPTools returns nil; catalog tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns import, which must validate files with --dry-run
// before any catalog exists, and export, which shares its lifecycle.
func (e *Extension) NoStoreCommands() []string {
	return []string{"import", "export"}
}
