/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE opens the catalog lazily: only commands that need it
// trigger extension init, so init, guide and config work before a catalog
// exists.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/facet/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Searchable catalog of typed entries",
	Long:  `A catalog of entries (items, ingredients, records) with a prefix query language, saved searches, and an MCP server for LLM integration.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "facet search oak", returns "search".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and
// closes the catalog service before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
