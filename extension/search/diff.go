// diff.go implements "facet diff", comparing the ids two queries match.
// Both queries run over the full catalog; result limits do not apply.

package search

import (
	"fmt"
	"io"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/diff"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <query1> <query2>",
		Short: "Compare the results of two queries",
		Long: `Compare the entry ids matched by two queries. Lines starting with "-"
are only matched by the first query, "+" only by the second.

  facet diff '@minecraft' '@minecraft -$logs'
  facet diff '' '$c:gems'        # everything vs. gems`,
		Args: cobra.ExactArgs(2),
		RunE: e.runDiff,
	}
	c.Flags().Bool(extension.FlagNoColour, false, "Disable colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	q1, q2 := args[0], args[1]
	noColour, _ := c.Flags().GetBool(extension.FlagNoColour)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	r, err := diff.Run(c.Context(), w, e.svc, q1, q2, cmd.Terminal() && !noColour)

	log.Event("search:diff", "diff").
		Author(cmd.Author()).
		Query(q1).
		Detail("query2", q2).
		Detail("removed", r.Removed).
		Detail("added", r.Added).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}
	return cmd.PrintJSON(r)
}
