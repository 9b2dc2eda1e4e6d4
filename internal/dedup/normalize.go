// Package dedup is the deduplication core: pure comparison and merge logic
// over immutable job records. No I/O, no errors, no shared state.
package dedup

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for comparison: lowercase, punctuation
// stripped, runs of whitespace collapsed to single spaces, trimmed. Total
// over all inputs; empty or missing text normalizes to "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
