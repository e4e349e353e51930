package match

import (
	"math"
	"sort"
	"strings"
)

// CategoryBonus is added to a candidate's score when its category equals the
// POS item's inferred category.
const CategoryBonus = 5

// Score returns a 0-100 token-set similarity between two normalized names.
//
// Both names are split into word sets. The shared words are compared against
// each side's shared-plus-exclusive words and the two sides against each
// other; the best indel ratio wins. When one name's words are a subset of the
// other's the score is 100. Score is symmetric and Score(x, x) is 100 for any
// non-empty x. An empty side scores 0.
func Score(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			sect = append(sect, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}

	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	shared := joinSorted(sect)
	combinedA := joinNonEmpty(shared, joinSorted(onlyA))
	combinedB := joinNonEmpty(shared, joinSorted(onlyB))

	best := indelRatio(combinedA, combinedB)
	if shared != "" {
		best = max(best, indelRatio(shared, combinedA), indelRatio(shared, combinedB))
	}
	return clampScore(int(math.Round(best)))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func joinSorted(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// indelRatio is 100 * 2*LCS / (len(a)+len(b)), the normalized
// insertion/deletion similarity of two strings.
func indelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcsLength(ra, rb)) / float64(total)
}

func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func clampScore(score int) int {
	return min(max(score, 0), 100)
}
