// Package matching resolves requirement keywords against a résumé with an
// exact, variation, fuzzy and token-set cascade, and scores the results.
package matching

import (
	"context"
	"math"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Cascade thresholds and score multipliers.
const (
	ExactScore      = 1.0
	VariationScore  = 0.9
	FuzzyThreshold  = 0.85
	FuzzyFactor     = 0.9
	TokenSetMinimum = 0.90
	TokenSetFactor  = 0.7
	RequiredWeight  = 2.0
	PreferredWeight = 1.0
)

// maxWindowTokens is the widest token window compared in the fuzzy tier.
const maxWindowTokens = 3

var tokenPattern = regexp.MustCompile(`[\w.+#/-]+`)

// Document is the immutable view of a résumé the cascade reads.
type Document struct {
	Text     string
	Sections types.Sections

	lower   string
	windows []string
}

// NewDocument prepares text and sections for matching. The fuzzy windows are
// built once and shared by every keyword.
func NewDocument(text string, sections types.Sections) *Document {
	lower := strings.ToLower(text)
	return &Document{
		Text:     text,
		Sections: sections,
		lower:    lower,
		windows:  buildWindows(tokenPattern.FindAllString(lower, -1)),
	}
}

func buildWindows(tokens []string) []string {
	windows := make([]string, 0, len(tokens)*maxWindowTokens)
	for i := range tokens {
		for n := 1; n <= maxWindowTokens && i+n <= len(tokens); n++ {
			windows = append(windows, strings.Join(tokens[i:i+n], " "))
		}
	}
	return windows
}

// MatchKeyword resolves one keyword. The first tier that succeeds wins.
func MatchKeyword(kw types.Keyword, doc *Document) types.MatchResult {
	result := types.MatchResult{
		Keyword:   kw.Text,
		Category:  kw.Category,
		MatchType: types.MatchNotFound,
	}

	keyword := strings.ToLower(strings.TrimSpace(kw.Text))
	if keyword == "" {
		return result
	}

	for _, v := range Variations(keyword) {
		if ContainsWord(doc.lower, v) {
			result.Found = true
			result.MatchedText = v
			result.Location = doc.Sections.Locate(v)
			if v == keyword {
				result.MatchType, result.MatchScore = types.MatchExact, ExactScore
			} else {
				result.MatchType, result.MatchScore = types.MatchVariation, VariationScore
			}
			return result
		}
	}

	best, bestWindow := 0.0, ""
	for _, w := range doc.windows {
		if r := Ratio(keyword, w); r > best {
			best, bestWindow = r, w
		}
	}
	if best >= FuzzyThreshold {
		result.Found = true
		result.MatchType = types.MatchFuzzy
		result.MatchScore = round2(best * FuzzyFactor)
		result.MatchedText = bestWindow
		result.Location = doc.Sections.Locate(longestToken(bestWindow))
		return result
	}

	if len(strings.Fields(keyword)) > 1 {
		for _, sec := range doc.Sections {
			if r := TokenSetRatio(keyword, strings.ToLower(sec.Content)); r >= TokenSetMinimum {
				result.Found = true
				result.MatchType = types.MatchFuzzy
				result.MatchScore = round2(r * TokenSetFactor)
				result.MatchedText = keyword
				result.Location = sec.Name
				return result
			}
		}
	}

	return result
}

// longestToken returns the longest space-separated token of a window. Windows
// are rebuilt from tokens and lose the punctuation between them, so the
// window itself may not occur in any section.
func longestToken(window string) string {
	longest := ""
	for _, tok := range strings.Fields(window) {
		if len(tok) > len(longest) {
			longest = tok
		}
	}
	return longest
}

// ContainsWord reports whether needle occurs in haystack bounded by non-word
// characters or the text edges. Symbols such as "C++" are matched literally.
func ContainsWord(haystack, needle string) bool {
	for offset := 0; offset < len(haystack); {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(needle)
		if (start == 0 || !isWordByte(haystack[start-1])) && (end == len(haystack) || !isWordByte(haystack[end])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ScoreKeywords resolves every keyword in parallel and aggregates the
// weighted score. Results keep the input order.
func ScoreKeywords(ctx context.Context, keywords []types.Keyword, doc *Document) (*types.KeywordReport, error) {
	results := make([]types.MatchResult, len(keywords))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, kw := range keywords {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = MatchKeyword(kw, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	required, preferred := types.Missing(results)
	return &types.KeywordReport{
		Score:            Score(results),
		Results:          results,
		MissingRequired:  required,
		MissingPreferred: preferred,
	}, nil
}

// Score is round(100 * sum(score*weight) / sum(weight)) with required
// keywords weighted 2 and preferred 1, clamped to [0,100]. No results score 0.
func Score(results []types.MatchResult) int {
	if len(results) == 0 {
		return 0
	}

	var total, weighted float64
	for _, r := range results {
		w := PreferredWeight
		if r.Category == types.CategoryRequired {
			w = RequiredWeight
		}
		total += w
		weighted += r.MatchScore * w
	}

	score := int(math.Round(weighted / math.Max(total, 1) * 100))
	return min(max(score, 0), 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
