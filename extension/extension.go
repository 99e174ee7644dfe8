// Package extension is facet's plugin surface. An extension bundles CLI
// commands and MCP tools for one area (catalog management, searching) and
// registers itself from init, so the root command only has to import the
// extension packages it wants.
package extension

import "github.com/spf13/cobra"

// Extension is implemented by every registered extension.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to add to the root command.
	Commands() []*cobra.Command

	// MCPTools returns tools to add to the MCP server.
	MCPTools() []MCPTool
}

// Initializable extensions run setup, such as creating their own tables,
// once the store is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless lists commands that must run without an open store, such as
// init before the database exists or serve which opens its own service.
type Storeless interface {
	NoStoreCommands() []string
}
