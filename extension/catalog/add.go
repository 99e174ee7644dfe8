// add.go implements "facet add" for single entries. Bulk loads go through
// import.

package catalog

import (
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	entry "github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an entry",
		Long: `Add one entry to the catalog.

  facet add minecraft:stick --name Stick --tag c:rods/wooden
  facet add create:shaft --namespace-name Create --tooltip "Kinetic component"

The namespace comes from the id prefix; the name defaults to the id path.
An existing id is an error unless --replace is given.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runAdd,
	}
	c.Flags().StringP(extension.FlagName, "n", "", "Display name")
	c.Flags().String(extension.FlagNSName, "", "Human readable namespace name")
	c.Flags().StringArrayP(extension.FlagTag, "t", nil, "Tag (repeatable)")
	c.Flags().StringArray(extension.FlagTooltip, nil, "Tooltip line (repeatable)")
	c.Flags().BoolP(extension.FlagReplace, "r", false, "Overwrite an existing entry")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	ent := entry.Entry{ID: args[0]}
	ent.Name, _ = c.Flags().GetString(extension.FlagName)
	ent.NamespaceName, _ = c.Flags().GetString(extension.FlagNSName)
	ent.Tags, _ = c.Flags().GetStringArray(extension.FlagTag)
	ent.Tooltip, _ = c.Flags().GetStringArray(extension.FlagTooltip)
	replace, _ := c.Flags().GetBool(extension.FlagReplace)

	ent = ent.Normalise()
	if err := validate.Entry(ent); err != nil {
		return cmd.PrintJSONError(err)
	}

	_, err := e.svc.Add(c.Context(), []entry.Entry{ent}, cmd.Author(), replace)

	log.Event("catalog:add", "add").
		Author(cmd.Author()).
		Target(ent.ID).
		Detail("replace", replace).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add %q: %w", ent.ID, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(ent)
	}
	verb := "Added"
	if replace {
		verb = "Stored"
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", verb, ent.ID)
	return nil
}
