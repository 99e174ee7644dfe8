// tools_catalog.go implements the catalog tools (add, get, remove,
// namespaces) and the entry resource.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/store"
	"github.com/jpl-au/facet/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed entry resource URI.
var ErrInvalidURI = errors.New("invalid URI")

const entryURIPrefix = "facet://entries/"

// add handles facet_add tool calls.
func (h *handlers) add(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	entries, err := getEntries(req, "entries")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id := getString(req, "id", ""); id != "" {
		entries = append(entries, catalog.Entry{
			ID:      id,
			Name:    getString(req, "name", ""),
			Tooltip: getStrings(req, "tooltip"),
			Tags:    getStrings(req, "tags"),
		})
	}
	if len(entries) == 0 {
		return mcp.NewToolResultError("entries or id is required"), nil
	}
	for i, e := range entries {
		if err := validate.Entry(e); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("entry %d: %v", i, err)), nil
		}
	}

	replace := getBool(req, "replace", false)
	n, err := h.svc.Add(ctx, entries, author, replace)

	log.Event("mcp:add", "add").Author(author).Target(entries[0].ID).Count(n).Detail("replace", replace).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{"added": n, "replace": replace})
}

// get handles facet_get tool calls. Missing ids are reported alongside the
// entries that were found.
func (h *handlers) get(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	ids := getStrings(req, "ids")
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids is required"), nil
	}

	found := make([]catalog.Entry, 0, len(ids))
	var missing []string
	for _, id := range ids {
		e, err := h.svc.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			log.Event("mcp:get", "read").Author("mcp").Target(id).Write(err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		found = append(found, *e)
	}

	log.Event("mcp:get", "read").Author("mcp").Count(len(found)).Write(nil)

	return jsonResult(map[string]any{"entries": found, "missing": missing})
}

// remove handles facet_remove tool calls.
func (h *handlers) remove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	author := getString(req, "author", "mcp")

	err = h.svc.Remove(ctx, id)

	log.Event("mcp:remove", "delete").Author(author).Target(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("removed " + id), nil
}

// namespaces handles facet_namespaces tool calls.
func (h *handlers) namespaces(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	ns, err := h.svc.Namespaces(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ns)
}

// readEntry handles facet://entries/{id} resource requests.
func (h *handlers) readEntry(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	uri := req.Params.URI
	id, ok := strings.CutPrefix(uri, entryURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	e, err := h.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(e)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
