package scoring

import (
	"math"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Sub-score weights of the overall score.
const (
	KeywordWeight    = 0.40
	SemanticWeight   = 0.35
	StructuralWeight = 0.25
)

var bands = []struct {
	min    int
	status types.RecruiterStatus
	rank   string
}{
	{80, types.StatusShortlist, "Top 10%"},
	{65, types.StatusReview, "Top 25%"},
	{50, types.StatusMaybe, "Top 50%"},
}

// OverallScore weights the three sub-scores. Inputs are clamped to [0,100].
func OverallScore(keyword, semantic, structural int) int {
	weighted := KeywordWeight*float64(clamp(keyword)) +
		SemanticWeight*float64(clamp(semantic)) +
		StructuralWeight*float64(clamp(structural))
	return clamp(int(math.Round(weighted)))
}

// StatusFor maps an overall score to a recruiter status.
func StatusFor(overall int) types.RecruiterStatus {
	for _, b := range bands {
		if overall >= b.min {
			return b.status
		}
	}
	return types.StatusAutoRejected
}

// RankFor maps an overall score to a percentile band label.
func RankFor(overall int) string {
	for _, b := range bands {
		if overall >= b.min {
			return b.rank
		}
	}
	return "Bottom 50%"
}

// Aggregate builds the score bundle.
func Aggregate(keyword, semantic, structural int) types.ScoreBundle {
	overall := OverallScore(keyword, semantic, structural)
	return types.ScoreBundle{
		Keyword:    clamp(keyword),
		Semantic:   clamp(semantic),
		Structural: clamp(structural),
		Overall:    overall,
		Status:     StatusFor(overall),
		Rank:       RankFor(overall),
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
