// explain.go implements "facet explain", showing which matcher claims each
// term of a query without scanning the catalog.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExplainCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "explain <query...>",
		Short: "Show how each term of a query is bound",
		Long: `Parse a query and show, for every term, the alternative it belongs to,
the matcher that claimed it, the operand left after the prefix, and whether
it is negated.

  facet explain '@create -$gears | r/^oak'`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runExplain,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print raw markdown")
	return c
}

func (e *Extension) runExplain(c *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	q, err := e.svc.Explain(query)

	log.Event("search:explain", "explain").Author(cmd.Author()).Query(query).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("explain: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"query":      query,
			"terms":      format.Terms(q),
			"highlights": q.Highlights(),
		})
	}
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	cmd.PrintMarkdown(format.Explain(q), raw)
	return nil
}
