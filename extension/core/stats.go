// stats.go implements "facet stats".

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("core:stats", "stats").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}
	printStats(st)
	return nil
}

func printStats(st *store.Stats) {
	w := cmd.Out()
	fmt.Fprintf(w, "Entries:        %d\n", st.Entries)
	fmt.Fprintf(w, "Namespaces:     %d\n", st.Namespaces)
	fmt.Fprintf(w, "Tags:           %d\n", st.Tags)
	fmt.Fprintf(w, "Tooltip lines:  %d\n", st.TooltipLines)
	fmt.Fprintf(w, "Saved queries:  %d\n", st.SavedQueries)
	fmt.Fprintf(w, "Authors:        %d\n", st.Authors)
	if st.Entries > 0 {
		fmt.Fprintf(w, "Oldest entry:   %s\n", time.Unix(st.OldestEntry, 0).Format(time.DateTime))
		fmt.Fprintf(w, "Newest entry:   %s\n", time.Unix(st.NewestEntry, 0).Format(time.DateTime))
	}
}
