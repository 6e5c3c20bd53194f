// Package text provides utilities for cleaning harvested article text before
// it is persisted or vectorized.
package text

import "strings"

// Normalize collapses all whitespace runs (spaces, tabs, newlines) into single
// spaces and trims leading/trailing whitespace. Applied to every title,
// summary, and body before persistence so the dataset is one clean line per
// field.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Length thresholds (minimum article length) operate on runes, not
// bytes, so multi-byte characters are counted correctly.
func CountRunes(text string) int {
	return len([]rune(text))
}
