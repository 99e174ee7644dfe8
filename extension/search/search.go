// Package search provides the query commands.
// Registers commands: search, explain, diff, save, saved.
package search

import (
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the query commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newExplainCmd(),
		e.newDiffCmd(),
		e.newSaveCmd(),
		e.newSavedCmd(),
	}
}

// MCPTools returns the saved query tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return savedQueryTools()
}
