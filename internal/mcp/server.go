// Package mcp implements the Model Context Protocol server, exposing facet
// searches and catalog operations to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/engine"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the catalog has not been
// initialised. The LLM should call facet_init before using other tools.
const ErrNotInitialised = "catalog not initialised - call facet_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even if no catalog exists so an LLM can call facet_init.
// Tools that need a catalog return ErrNotInitialised until then.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}
	if err := h.open(); err != nil {
		if !errors.Is(err, repo.ErrNotInitialised) {
			slog.Error("failed to open catalog", "error", err)
			return err
		}
		slog.Info("facet not initialised, starting in uninitialised mode - call facet_init to create a catalog")
	}
	defer h.close()

	s := newServer(h)

	slog.Info("facet MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every built-in and extension tool.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"facet",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the catalog.
// The svc field is nil until the catalog exists.
type handlers struct {
	db     string            // catalog name for init
	svc    *engine.Service   // nil if not initialised
	extCtx extension.Context // nil if not initialised
}

// open discovers the catalog and wires the extension context to it.
func (h *handlers) open() error {
	svc, err := engine.New(h.db)
	if err != nil {
		return err
	}
	return h.attach(svc)
}

// attach makes svc the handlers' service and initialises extensions
// against it.
func (h *handlers) attach(svc *engine.Service) error {
	cfg, err := config.Load()
	if err != nil {
		_ = svc.Close()
		return err
	}
	log.SetProject(filepath.Dir(svc.DBPath()))

	extCtx := extension.NewContext(svc, svc.DB(), cfg)
	svc.SetExtensionContext(extCtx)
	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(extCtx); err != nil {
				_ = svc.Close()
				return err
			}
		}
	}
	h.svc = svc
	h.extCtx = extCtx
	return nil
}

func (h *handlers) close() {
	if h.svc == nil {
		return
	}
	if err := h.svc.Close(); err != nil {
		slog.Warn("closing catalog", "error", err)
	}
}

// requireInit returns an error result if the catalog is not initialised.
// Tools that require a catalog should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based access to single entries.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"facet://entries/{id}",
			"Entry",
			mcp.WithTemplateDescription("Read a catalog entry by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readEntry,
	)
}

// registerTools exposes facet operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without an existing catalog
	s.AddTool(
		mcp.NewTool("facet_init",
			mcp.WithDescription("Initialise a new facet catalog. Call this first if other tools return 'catalog not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the catalog is gitignored (not committed to version control)")),
		),
		h.initCatalog,
	)

	s.AddTool(
		mcp.NewTool("facet_search",
			mcp.WithDescription("Filter the catalog with a query. Terms are space separated; prefixes pick a matcher (@ namespace, # tooltip, $ tag, * id glob, r/ regex); - negates; | separates alternatives. An empty query matches everything."),
			mcp.WithString("query", mcp.Description("Search query (empty matches every entry)")),
			mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default: limits.max_results)")),
			mcp.WithString("namespace", mcp.Description("Only search this namespace")),
			mcp.WithBoolean("ids_only", mcp.Description("Return entry ids instead of full entries")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("facet_explain",
			mcp.WithDescription("Show how each term of a query is bound to a matcher, without searching"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		),
		h.explain,
	)

	s.AddTool(
		mcp.NewTool("facet_matchers",
			mcp.WithDescription("List the registered matchers in registration order with their prefixes and modes"),
		),
		h.matchers,
	)

	s.AddTool(
		mcp.NewTool("facet_diff",
			mcp.WithDescription("Compare the results of two queries by entry id"),
			mcp.WithString("query1", mcp.Required(), mcp.Description("Old query")),
			mcp.WithString("query2", mcp.Required(), mcp.Description("New query")),
		),
		h.diff,
	)

	s.AddTool(
		mcp.NewTool("facet_add",
			mcp.WithDescription("Add entries to the catalog. Pass either 'entries' or a single 'id' with its fields."),
			mcp.WithArray("entries", mcp.Description("Entries as objects with id, name, namespace_name, tooltip and tags")),
			mcp.WithString("id", mcp.Description("Entry id (e.g. minecraft:stick)")),
			mcp.WithString("name", mcp.Description("Display name (default: id path)")),
			mcp.WithArray("tooltip", mcp.Description("Tooltip lines"), mcp.WithStringItems()),
			mcp.WithArray("tags", mcp.Description("Tag names"), mcp.WithStringItems()),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			mcp.WithBoolean("replace", mcp.Description("Overwrite entries whose id already exists")),
		),
		h.add,
	)

	s.AddTool(
		mcp.NewTool("facet_get",
			mcp.WithDescription("Read catalog entries by id"),
			mcp.WithArray("ids", mcp.Required(), mcp.Description("Entry ids"), mcp.WithStringItems()),
		),
		h.get,
	)

	s.AddTool(
		mcp.NewTool("facet_remove",
			mcp.WithDescription("Remove an entry from the catalog"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.remove,
	)

	s.AddTool(
		mcp.NewTool("facet_namespaces",
			mcp.WithDescription("List namespaces with their entry counts"),
		),
		h.namespaces,
	)

	s.AddTool(
		mcp.NewTool("facet_import",
			mcp.WithDescription("Import YAML or JSON entry files from the filesystem"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File or directory to import")),
			mcp.WithString("format", mcp.Description("Force a format: yaml or json (default: from extension)")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			mcp.WithBoolean("replace", mcp.Description("Overwrite entries whose id already exists")),
			mcp.WithBoolean("hidden", mcp.Description("Include hidden files/directories")),
			mcp.WithBoolean("dry_run", mcp.Description("Validate without importing")),
		),
		h.importEntries,
	)

	s.AddTool(
		mcp.NewTool("facet_export",
			mcp.WithDescription("Export entries to a YAML or JSON file"),
			mcp.WithString("dest", mcp.Required(), mcp.Description("Filesystem destination path")),
			mcp.WithString("query", mcp.Description("Export only entries matching this query")),
			mcp.WithString("namespace", mcp.Description("Export only this namespace")),
			mcp.WithString("format", mcp.Description("yaml or json (default: from extension)")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportEntries,
	)

	s.AddTool(
		mcp.NewTool("facet_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.prefilter, search.mod.prefix) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("facet_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (e.g. search.mod.prefix, limits.max_results)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("facet_guide",
			mcp.WithDescription("Get help content for facet"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'search', 'import') or empty for the index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the tools contributed by extensions. Their
// handlers receive the extension context, which is only available once
// the catalog exists.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.extensionHandler(t.Handler))
		}
	}
}

func (h *handlers) extensionHandler(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := h.requireInit(); err != nil {
			return err, nil
		}
		return fn(ctx, h.extCtx, req)
	}
}
