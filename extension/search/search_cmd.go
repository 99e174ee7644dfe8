// search_cmd.go implements "facet search".

package search

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/service"
	"github.com/spf13/cobra"
)

// resultJSON is the -o json form of a search.
type resultJSON struct {
	Query      string             `json:"query"`
	Count      int                `json:"count"`
	Scanned    int                `json:"scanned"`
	Truncated  bool               `json:"truncated"`
	Entries    []catalog.Entry    `json:"entries,omitempty"`
	IDs        []string           `json:"ids,omitempty"`
	Highlights []search.Highlight `json:"highlights"`
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search [query...]",
		Short: "Filter the catalog",
		Long: `Filter the catalog with a query. Arguments are joined with spaces.

  facet search oak                     # name contains "oak"
  facet search '@minecraft -stick'     # namespace, negated name
  facet search -- @minecraft -stick    # same; "--" ends flag parsing
  facet search '$planks | $logs'       # either tag
  facet search --saved gems            # run a saved query

Negated terms start with "-", so quote the query or put them after "--".
See "facet guide search" for the full syntax. An empty query lists every
entry.`,
		RunE: e.runSearch,
	}
	c.Flags().BoolP(extension.FlagIDsOnly, "l", false, "Print matching ids only")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Print the match count only")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum entries to return (default: limits.max_results)")
	c.Flags().StringP(extension.FlagSaved, "s", "", "Run a saved query by name")
	c.Flags().String(extension.FlagNamespace, "", "Only search this namespace")
	c.Flags().Bool(extension.FlagNoPrefilter, false, "Scan every entry without the literal prefilter")
	c.Flags().Bool(extension.FlagNoColour, false, "Disable highlighting")
	c.MarkFlagsMutuallyExclusive(extension.FlagIDsOnly, extension.FlagCount)
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := strings.Join(args, " ")

	saved, _ := c.Flags().GetString(extension.FlagSaved)
	if saved != "" {
		if len(args) > 0 {
			return cmd.PrintJSONError(errors.New("cannot combine a query with --saved"))
		}
		sq, err := e.svc.SavedQuery(ctx, saved)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("saved query %q: %w", saved, err))
		}
		query = sq.Query
	}

	var opts service.SearchOptions
	opts.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	opts.Namespace, _ = c.Flags().GetString(extension.FlagNamespace)
	opts.NoPrefilter, _ = c.Flags().GetBool(extension.FlagNoPrefilter)
	if opts.Limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", opts.Limit))
	}

	res, err := e.svc.Search(ctx, query, opts)

	count := 0
	if res != nil {
		count = len(res.Entries)
	}
	log.Event("search:search", "search").
		Author(cmd.Author()).
		Query(query).
		Count(count).
		Detail("saved", saved).
		Detail("namespace", opts.Namespace).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}

	idsOnly, _ := c.Flags().GetBool(extension.FlagIDsOnly)
	countOnly, _ := c.Flags().GetBool(extension.FlagCount)

	if cmd.JSON() {
		out := resultJSON{
			Query:      query,
			Count:      count,
			Scanned:    res.Scanned,
			Truncated:  res.Truncated,
			Highlights: res.Highlights,
		}
		switch {
		case countOnly:
		case idsOnly:
			out.IDs = res.IDs()
		default:
			out.Entries = res.Entries
		}
		return cmd.PrintJSON(out)
	}

	w := cmd.Out()
	switch {
	case countOnly:
		fmt.Fprintln(w, count)
	case idsOnly:
		if err := format.IDs(w, res.Entries); err != nil {
			return err
		}
	default:
		noColour, _ := c.Flags().GetBool(extension.FlagNoColour)
		if cmd.Terminal() && !noColour && query != "" {
			fmt.Fprintf(w, "%s\n\n", format.Highlight(query, res.Highlights))
		}
		if err := format.List(w, res.Entries); err != nil {
			return err
		}
	}
	if res.Truncated {
		fmt.Fprintf(os.Stderr, "(showing first %d matches; raise --limit or limits.max_results for more)\n", count)
	}
	return nil
}
