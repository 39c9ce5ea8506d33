package wiki

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, removes combining marks, and recomposes,
// so "Chișinău" folds to "Chisinau".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldTitle lowercases and strips accents for title comparison. Wikipedia
// titles carry full diacritics while pipeline records usually do not, so
// both sides are folded before measuring edit distance.
func foldTitle(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
