// tools_util.go extracts typed parameters from MCP's generic argument map.
//
// Extraction is permissive: a missing or mistyped optional parameter yields
// the caller's default instead of an error, since LLMs often omit optional
// arguments or send "true" where true was meant.

package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// arguments returns the request arguments as a map, or nil.
func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

// getString returns a string parameter or def.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean parameter or def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := arguments(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt returns a numeric parameter as an int, or def. JSON numbers arrive
// as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	if v, ok := arguments(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// getStrings returns a string array parameter. Non-string elements are
// skipped. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	arr, ok := arguments(req)[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// getEntries decodes an array of entry objects. The objects use the entry
// file field names (id, name, namespace_name, tooltip, tags), so the raw
// value is round-tripped through JSON. Returns nil when the parameter is
// absent.
func getEntries(req mcp.CallToolRequest, name string) ([]catalog.Entry, error) {
	raw, ok := arguments(req)[name]
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var entries []catalog.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s must be an array of entry objects: %w", name, err)
	}
	return entries, nil
}

// jsonResult wraps v, pretty-printed, in a text result. Marshalling
// failures become error results so every failure reaches the client the
// same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
