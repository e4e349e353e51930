package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	noiseTokens   = regexp.MustCompile(`\b(bt|black tie|7g|1g|2g)\b`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Normalize reduces a product name to the form used for every comparison:
// lower-cased, accents folded, parentheticals and brand/weight markers
// removed, punctuation stripped and whitespace collapsed.
//
// Accented letters fold to their base letter before punctuation is stripped,
// so "Crème Brûlée" becomes "creme brulee" rather than losing the letters
// as "crme brle". Override tables are normalized the same way on load.
//
// Normalize is idempotent. Stripping punctuation can expose a new noise
// token ("b-t" becomes "bt"), so the steps repeat until nothing changes.
func Normalize(name string) string {
	s := name
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = foldAccents(strings.ToLower(s))
	s = parenthetical.ReplaceAllString(s, "")
	s = noiseTokens.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// foldAccents maps "crème" to "creme" so accented names survive the
// [a-z0-9] filter. The transformer is stateful, so one is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
