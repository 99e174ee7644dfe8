// show.go implements "facet show".

package catalog

import (
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id := args[0]
	ent, err := e.svc.Get(c.Context(), id)

	log.Event("catalog:show", "read").Author(cmd.Author()).Target(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %q: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(ent)
	}
	return format.Entry(cmd.Out(), *ent)
}
