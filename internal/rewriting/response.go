package rewriting

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/types"
)

var errNoObject = errors.New("no JSON object in response")

// BulletChange is one proposed bullet rewrite. Plain-text responses fill
// Original and Optimized; LaTeX responses fill the Latex variants.
type BulletChange struct {
	Section        string   `json:"section"`
	EntryIndex     int      `json:"entry_index"`
	BulletIndex    int      `json:"bullet_index"`
	Original       string   `json:"original"`
	Optimized      string   `json:"optimized"`
	OriginalLatex  string   `json:"original_latex"`
	OptimizedLatex string   `json:"optimized_latex"`
	KeywordsAdded  []string `json:"keywords_added"`
	Reason         string   `json:"reason"`
}

// Text returns the proposed replacement, preferring the LaTeX form.
func (b BulletChange) Text() string {
	if strings.TrimSpace(b.OptimizedLatex) != "" {
		return strings.TrimSpace(b.OptimizedLatex)
	}
	return strings.TrimSpace(b.Optimized)
}

// HasLatex reports whether the replacement was given as LaTeX.
func (b BulletChange) HasLatex() bool {
	return strings.TrimSpace(b.OptimizedLatex) != ""
}

// Source returns the bullet being replaced as the model quoted it.
func (b BulletChange) Source() string {
	if strings.TrimSpace(b.OriginalLatex) != "" {
		return strings.TrimSpace(b.OriginalLatex)
	}
	return strings.TrimSpace(b.Original)
}

// Response is a decoded optimization answer.
type Response struct {
	OptimizedSummary     string                    `json:"optimized_summary"`
	OptimizedAbout       string                    `json:"optimized_about"`
	OptimizedSkills      string                    `json:"optimized_skills"`
	OptimizedSkillsBlock string                    `json:"optimized_skills_block"`
	BulletChanges        []BulletChange            `json:"bullet_changes"`
	KeywordsAdded        []string                  `json:"keywords_successfully_added"`
	KeywordsImpossible   []types.ImpossibleKeyword `json:"keywords_impossible_to_add"`
	EstimatedNewScore    *float64                  `json:"estimated_new_score"`
	Notes                string                    `json:"optimization_notes"`
}

// Summary returns the rewritten summary under either of its field names.
func (r *Response) Summary() string {
	if s := strings.TrimSpace(r.OptimizedSummary); s != "" {
		return s
	}
	return strings.TrimSpace(r.OptimizedAbout)
}

// Skills returns the rewritten skills block under either of its field names.
func (r *Response) Skills() string {
	if s := strings.TrimSpace(r.OptimizedSkills); s != "" {
		return s
	}
	return strings.TrimSpace(r.OptimizedSkillsBlock)
}

// ParseOptimization decodes an optimization response. Fields that fail the
// schema are dropped; a response with no JSON object is an error.
func ParseOptimization(raw string) (*Response, error) {
	object, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, &schemas.MalformedError{Cause: errNoObject}
	}
	cleaned, _, err := schemas.Sanitize(schemas.OptimizationSchema, object)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(cleaned, &resp); err != nil {
		return nil, &schemas.MalformedError{Cause: err}
	}
	if resp.KeywordsAdded == nil {
		resp.KeywordsAdded = []string{}
	}
	if resp.KeywordsImpossible == nil {
		resp.KeywordsImpossible = []types.ImpossibleKeyword{}
	}
	return &resp, nil
}
