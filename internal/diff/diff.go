// Package diff compares the results of two searches and formats the
// difference as a unified-style listing of entry identifiers.
package diff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Differ is the interface for diff operations.
type Differ interface {
	Diff(ctx context.Context, q1, q2 string) (Result, error)
}

// Run executes a diff operation and writes output to w.
func Run(ctx context.Context, w io.Writer, svc Differ, q1, q2 string, colour bool) (Result, error) {
	r, err := svc.Diff(ctx, q1, q2)
	if err != nil {
		return r, err
	}

	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Result holds diff output.
type Result struct {
	Old     string `json:"old"`     // old label
	New     string `json:"new"`     // new label
	Diff    string `json:"diff"`    // plain diff text
	Removed int    `json:"removed"` // ids only in the old result
	Added   int    `json:"added"`   // ids only in the new result
	Common  int    `json:"common"`  // ids in both
}

// Equal reports whether both sides held the same ids in the same order.
func (r Result) Equal() bool { return r.Removed == 0 && r.Added == 0 }

// Compute returns a line diff between two id lists.
func Compute(oldIDs, newIDs []string, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(oldIDs), joinLines(newIDs))
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	r := Result{Old: oldLabel, New: newLabel, Diff: format(d)}
	for _, part := range d {
		n := len(splitLines(part.Text))
		switch part.Type {
		case diffmatchpatch.DiffDelete:
			r.Removed += n
		case diffmatchpatch.DiffInsert:
			r.Added += n
		case diffmatchpatch.DiffEqual:
			r.Common += n
		}
	}
	return r
}

func joinLines(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return strings.Join(ids, "\n") + "\n"
}

// splitLines splits text into lines, dropping the artefact empty string
// after a trailing newline.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header and a summary line.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	summary := fmt.Sprintf("%d removed, %d added, %d common\n", r.Removed, r.Added, r.Common)
	body := r.Diff
	if colour {
		body = Colourise(body)
	}
	return header + body + summary
}
