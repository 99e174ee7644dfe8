// config.go implements "facet config".
//
// Local config (.facet/config.yaml) takes precedence over global
// (~/.facet/config.yaml). Writes go back to the file that was read.

package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  facet config                        # show config
  facet config search.mod.prefix      # show one value
  facet config search.mod.prefix @m:  # set a value
  facet config limits.max_results 50

Keys:
  author.name
  search.prefilter                 true or false
  search.<matcher>.prefix          grammar prefix ("" removes it)
  search.<matcher>.mode            prefix, always or never
  limits.max_query                 longest accepted query in bytes
  limits.max_results               result cap (0 = unlimited)

Configuration locations:
  Global: ~/.facet/config.yaml
  Local:  .facet/config.yaml

Uses local config if it exists, otherwise global.
Use --local or --global to pick one explicitly.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.facet/config.yaml)")
	c.Flags().Bool(extension.FlagGlobal, false, "Use global config (~/.facet/config.yaml)")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagGlobal)
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)
	forceGlobal, _ := c.Flags().GetBool(extension.FlagGlobal)

	var cfg *config.Config
	var err error
	switch {
	case forceLocal:
		cfg, err = config.LoadScope(config.ScopeLocal)
	case forceGlobal:
		cfg, err = config.LoadScope(config.ScopeGlobal)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range slices.Sorted(maps.Keys(all)) {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("value", args[1]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
