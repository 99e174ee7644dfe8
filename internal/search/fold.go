package search

import "golang.org/x/text/cases"

// Fold returns the Unicode case folding of s. Matchers and the prefilter
// must fold text the same way for literal checks to agree.
//
// A cases.Caser is stateful, so long-lived users should hold their own
// NewFolder rather than call Fold in a loop.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NewFolder returns a case folder for use by a single goroutine.
func NewFolder() cases.Caser {
	return cases.Fold()
}
