/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// render.go decides how text reaches the terminal: glamour for markdown
// and ANSI colour for highlights, both only when stdout is a terminal.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Terminal reports whether command output goes to an interactive terminal.
func Terminal() bool {
	return out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintMarkdown writes markdown, rendered with glamour on a terminal and
// raw otherwise or when raw is set.
func PrintMarkdown(content string, raw bool) {
	if !raw && Terminal() {
		if rendered, err := glamour.Render(content, "dark"); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, content)
}
