package matching

import (
	"sort"
	"strings"
)

// Ratio is the normalized similarity of a and b: twice the length of their
// longest common subsequence over the combined length, computed over runes.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return float64(2*lcs(ra, rb)) / float64(total)
}

func lcs(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// TokenSetRatio compares the whitespace token sets of a and b. When one set
// contains the other the result is 1. Otherwise it is the best Ratio among
// the shared tokens and each side's shared-plus-remaining tokens.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for t := range ta {
		if tb[t] {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			onlyB = append(onlyB, t)
		}
	}

	if len(shared) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 1
	}

	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	sectA := joinNonEmpty(sect, strings.Join(onlyA, " "))
	sectB := joinNonEmpty(sect, strings.Join(onlyB, " "))

	best := Ratio(sectA, sectB)
	if sect != "" {
		best = max(best, Ratio(sect, sectA), Ratio(sect, sectB))
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
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
