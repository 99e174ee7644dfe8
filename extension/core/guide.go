// guide.go implements "facet guide". Pages are embedded in the binary and
// rendered with glamour on a terminal; pipes get raw markdown.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the facet usage guide",
		Long: `Outputs the facet guide for LLMs and humans.

  facet guide           # main guide
  facet guide search    # query syntax
  facet guide import    # entry file format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			cmd.PrintMarkdown(content, raw)
			return nil
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print raw markdown")
	return c
}
