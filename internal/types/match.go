package types

// MatchType records which cascade tier resolved a keyword.
type MatchType string

// Cascade outcomes.
const (
	MatchExact     MatchType = "exact"
	MatchVariation MatchType = "variation"
	MatchFuzzy     MatchType = "fuzzy"
	MatchNotFound  MatchType = "not_found"
)

// MatchResult is the resolution of one keyword against a résumé.
// Found is true exactly when MatchType is not MatchNotFound and MatchScore > 0.
type MatchResult struct {
	Keyword     string          `json:"keyword"`
	Category    KeywordCategory `json:"category"`
	Found       bool            `json:"found"`
	MatchType   MatchType       `json:"match_type"`
	MatchScore  float64         `json:"match_score"`
	MatchedText string          `json:"matched_text,omitempty"`
	Location    string          `json:"location,omitempty"`
}

// KeywordReport is the keyword sub-score with its per-keyword evidence.
type KeywordReport struct {
	Score            int           `json:"score"`
	Results          []MatchResult `json:"results"`
	MissingRequired  []string      `json:"missing_required"`
	MissingPreferred []string      `json:"missing_preferred"`
}

// Missing splits unresolved keywords by category, keeping input order.
func Missing(results []MatchResult) (required, preferred []string) {
	required = []string{}
	preferred = []string{}
	for _, r := range results {
		if r.Found {
			continue
		}
		if r.Category == CategoryRequired {
			required = append(required, r.Keyword)
		} else {
			preferred = append(preferred, r.Keyword)
		}
	}
	return required, preferred
}
