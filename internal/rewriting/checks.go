package rewriting

import (
	"regexp"
	"sort"
	"strings"
)

// maxKeywordRepeats is how often one keyword may appear in a replacement
// before it counts as stuffing.
const maxKeywordRepeats = 2

var figurePattern = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// Figures returns the distinct numbers in text with thousands separators
// removed, sorted.
func Figures(text string) []string {
	seen := map[string]bool{}
	for _, f := range figurePattern.FindAllString(text, -1) {
		seen[strings.ReplaceAll(f, ",", "")] = true
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// inflatedFigures returns numbers in replacement that original never states.
func inflatedFigures(original, replacement string) []string {
	known := map[string]bool{}
	for _, f := range Figures(original) {
		known[f] = true
	}
	var out []string
	for _, f := range Figures(replacement) {
		if !known[f] {
			out = append(out, f)
		}
	}
	return out
}

// stuffedKeywords returns keywords that replacement repeats more than
// maxKeywordRepeats times and more often than original does.
func stuffedKeywords(original, replacement string, keywords []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, kw := range keywords {
		key := strings.ToLower(strings.TrimSpace(kw))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		n := countWord(replacement, key)
		if n > maxKeywordRepeats && n > countWord(original, key) {
			out = append(out, kw)
		}
	}
	return out
}

// countWord counts case-insensitive occurrences of word that are not part of
// a longer word.
func countWord(text, word string) int {
	text = strings.ToLower(text)
	word = strings.ToLower(word)
	if word == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			break
		}
		start, end := i+j, i+j+len(word)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			n++
		}
		i = start + 1
	}
	return n
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}
