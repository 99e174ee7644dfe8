// ls.go implements "facet ls": entries in catalog order, as a list, a long
// table or a tree, or the namespace summary.

package catalog

import (
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [namespace]",
		Short: "List entries",
		Long: `List entries in catalog order, optionally for one namespace.

  facet ls              # id and name
  facet ls create -l    # namespace, tag and tooltip counts
  facet ls -t           # tree by namespace and id path
  facet ls -N           # namespaces with entry counts`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with counts")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Display as tree")
	c.Flags().BoolP(extension.FlagIDsOnly, "1", false, "Print ids only")
	c.Flags().BoolP(extension.FlagNamespaces, "N", false, "List namespaces instead of entries")
	c.MarkFlagsMutuallyExclusive(extension.FlagLong, extension.FlagTree, extension.FlagIDsOnly, extension.FlagNamespaces)
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	namespace := ""
	if len(args) > 0 {
		namespace = args[0]
	}

	if nsOnly, _ := c.Flags().GetBool(extension.FlagNamespaces); nsOnly {
		nss, err := e.svc.Namespaces(ctx)
		log.Event("catalog:ls", "namespaces").Author(cmd.Author()).Count(len(nss)).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("namespaces: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(nss)
		}
		return format.Namespaces(cmd.Out(), nss)
	}

	entries, err := e.svc.List(ctx, namespace)

	log.Event("catalog:ls", "list").
		Author(cmd.Author()).
		Target(namespace).
		Count(len(entries)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", namespace, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(entries)
	}

	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	idsOnly, _ := c.Flags().GetBool(extension.FlagIDsOnly)
	switch {
	case long:
		return format.Long(cmd.Out(), entries)
	case tree:
		return format.Tree(cmd.Out(), entries)
	case idsOnly:
		return format.IDs(cmd.Out(), entries)
	default:
		return format.List(cmd.Out(), entries)
	}
}
