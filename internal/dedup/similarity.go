package dedup

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio between the normalized
// forms of a and b: 1.0 for normalized-identical strings, 0.0 for no
// overlap. Two empty strings are identical by definition; empty against
// non-empty shares nothing.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	return difflib.NewMatcher(chars(na), chars(nb)).Ratio()
}

// chars splits s into one-rune strings so the matcher compares characters,
// not lines.
func chars(s string) []string {
	return strings.Split(s, "")
}
