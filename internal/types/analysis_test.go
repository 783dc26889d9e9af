package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysis_Summary(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Analysis{
		ID:        "1a2b3c4d",
		CreatedAt: created,
		Scores:    ScoreBundle{Overall: 72, Status: StatusReview},
		Job:       &JobDescription{Title: "Backend Engineer", Company: "Acme"},
	}

	s := a.Summary()
	assert.Equal(t, "1a2b3c4d", s.ID)
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, 72, s.Overall)
	assert.Equal(t, StatusReview, s.Status)
	assert.Equal(t, "Backend Engineer", s.JobTitle)
	assert.Equal(t, "Acme", s.Company)
}

func TestAnalysis_SummaryWithoutJob(t *testing.T) {
	s := (&Analysis{ID: "x"}).Summary()
	assert.Empty(t, s.JobTitle)
	assert.Empty(t, s.Company)
}

func TestScoreBundle_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(ScoreBundle{Keyword: 1, Semantic: 2, Structural: 3, Overall: 2, Status: StatusMaybe, Rank: "Top 50%"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"keyword_score", "semantic_score", "structure_score", "overall_score", "recruiter_status", "rank_estimate"} {
		assert.Contains(t, decoded, key)
	}
}
