// mcp.go defines how extensions contribute MCP tools.
//
// A tool travels with its handler so the server can register both in one
// step. Handlers get the request context for cancellation and the extension
// Context for service access.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler answers one MCP tool call.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
