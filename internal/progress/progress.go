// Package progress provides CLI progress indicators for long imports and
// scans. Output goes to stderr to keep stdout clean for piping, and is
// suppressed when stderr is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum total before progress is shown.
const minItems = 5

// width of the cleared line.
const width = 48

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Progress tracks and displays progress over a known number of units.
type Progress struct {
	w       io.Writer
	label   string
	unit    string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, updates are suppressed.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total, isTerminal(os.Stderr))
}

// NewWriter creates a progress reporter on w. Nothing is written unless
// tty is set.
func NewWriter(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Unit sets a label printed after the counts, such as "entries".
func (p *Progress) Unit(u string) *Progress {
	p.unit = u
	return p
}

// Increment advances the counter by one.
func (p *Progress) Increment() {
	p.Add(1)
}

// Add advances the counter by n, clamped to the total.
func (p *Progress) Add(n int) {
	p.current = min(p.current+n, p.total)
}

// Current returns the counter value.
func (p *Progress) Current() int { return p.current }

// Print writes the current progress, updating the line in place.
func (p *Progress) Print() {
	if p.total < minItems || !p.isTTY {
		return
	}
	pct := (p.current * 100) / p.total
	unit := ""
	if p.unit != "" {
		unit = " " + p.unit
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d%s (%d%%)", p.label, p.current, p.total, unit, pct)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if p.total < minItems || !p.isTTY {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", width))
}

// Spinner shows activity for work of unknown length, such as decoding a
// large entry file.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	isTTY   bool
	frames  []string
	running bool
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		label:  label,
		isTTY:  isTerminal(os.Stderr),
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Label changes the text shown next to the spinner.
func (s *Spinner) Label(l string) {
	s.label = l
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", s.frames[0], s.label)
}

// Tick advances the animation by one frame.
func (s *Spinner) Tick() {
	if !s.isTTY || !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(s.frames)
	fmt.Fprintf(s.w, "\r%s %s...", s.frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY || !s.running {
		return
	}
	s.running = false
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}
