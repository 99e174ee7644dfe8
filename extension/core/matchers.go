// matchers.go implements "facet matchers", listing the matcher registry
// that searches would use. It needs only config, so it works before init.

package core

import (
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/search/argument"
	"github.com/spf13/cobra"
)

func newMatchersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matchers",
		Short: "List matchers with their prefixes and modes",
		Long: `List the registered matchers in registration order.

When two prefixes overlap, the matcher listed first claims the term.
Change a matcher with:
  facet config search.<name>.prefix <prefix>
  facet config search.<name>.mode prefix|always|never`,
		Args: cobra.NoArgs,
		RunE: runMatchers,
	}
}

func runMatchers(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	ms := argument.NewRegistry(cfg.MatcherSettings()).All()

	log.Event("core:matchers", "list").Author(cmd.Author()).Count(len(ms)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(format.MatcherInfos(ms))
	}
	return format.Matchers(cmd.Out(), ms)
}
