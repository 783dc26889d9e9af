package types

// ChangeKind identifies what an accepted edit replaced.
type ChangeKind string

// Edit kinds.
const (
	ChangeBullet  ChangeKind = "bullet"
	ChangeSummary ChangeKind = "summary"
	ChangeSkills  ChangeKind = "skills"
)

// Change is one applied replacement.
type Change struct {
	Kind          ChangeKind `json:"kind"`
	Section       string     `json:"section"`
	LineNumber    int        `json:"line_number,omitempty"`
	Original      string     `json:"original"`
	Optimized     string     `json:"optimized"`
	KeywordsAdded []string   `json:"keywords_added,omitempty"`
	Reason        string     `json:"reason,omitempty"`
}

// RejectedChange is a proposed replacement dropped by the truthfulness filter
// or because its target could not be resolved.
type RejectedChange struct {
	Change
	Fabricated []string `json:"fabricated,omitempty"`
	Cause      string   `json:"cause"`
}

// ImpossibleKeyword is a keyword the candidate cannot truthfully claim.
type ImpossibleKeyword struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
}

// OptimizationResult is the outcome of one optimization request. When the
// generative service is unavailable, Available is false and Output equals the input.
type OptimizationResult struct {
	Available          bool                `json:"available"`
	Format             string              `json:"format"` // "latex" or "text"
	Output             string              `json:"output"`
	Changes            []Change            `json:"changes"`
	Rejected           []RejectedChange    `json:"rejected"`
	KeywordsAdded      []string            `json:"keywords_added"`
	KeywordsImpossible []ImpossibleKeyword `json:"keywords_impossible"`
	OriginalScore      int                 `json:"original_score"`
	EstimatedScore     int                 `json:"estimated_score"`
	Notes              string              `json:"notes,omitempty"`
	Syntax             *SyntaxResult       `json:"syntax,omitempty"`
}
