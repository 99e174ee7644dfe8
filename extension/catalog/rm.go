// rm.go implements "facet rm". Removal is permanent; the catalog keeps no
// history.

package catalog

import (
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove entries",
		Long:  `Remove one or more entries. Ids are removed in order; the first missing id stops the command.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	removed := make([]string, 0, len(args))
	for _, id := range args {
		err := e.svc.Remove(c.Context(), id)

		log.Event("catalog:rm", "delete").
			Author(cmd.Author()).
			Target(id).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", id, err))
		}
		removed = append(removed, id)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "Removed: %s\n", id)
		}
	}
	return cmd.PrintJSON(map[string]any{"removed": removed})
}
