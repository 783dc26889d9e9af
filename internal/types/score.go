package types

// StructureDetails records which rubric items were satisfied.
type StructureDetails struct {
	HasName            bool     `json:"has_name"`
	HasEmail           bool     `json:"has_email"`
	HasPhone           bool     `json:"has_phone"`
	HasLinkedIn        bool     `json:"has_linkedin"`
	HasGitHub          bool     `json:"has_github"`
	HasSummary         bool     `json:"has_summary"`
	HasExperience      bool     `json:"has_experience"`
	HasEducation       bool     `json:"has_education"`
	HasSkills          bool     `json:"has_skills"`
	HasProjects        bool     `json:"has_projects"`
	HasStandardHeaders bool     `json:"has_standard_headers"`
	HasDates           bool     `json:"has_dates"`
	WordCount          int      `json:"word_count"`
	EstimatedPages     int      `json:"estimated_pages"`
	FormattingIssues   []string `json:"formatting_issues"`
}

// StructureResult is the rubric breakdown of the structural sub-score.
type StructureResult struct {
	ContactScore    int              `json:"contact_score"`
	SectionsScore   int              `json:"sections_score"`
	LengthScore     int              `json:"length_score"`
	FormattingScore int              `json:"formatting_score"`
	TotalScore      int              `json:"total_score"`
	Details         StructureDetails `json:"details"`
}

// SemanticResult is the semantic sub-score. Available is false in degraded mode,
// in which case Score is 0 and SectionSimilarities is empty.
type SemanticResult struct {
	Score               int                `json:"score"`
	Available           bool               `json:"available"`
	SectionSimilarities map[string]float64 `json:"section_similarities"`
}

// RecruiterStatus is the simulated screening outcome.
type RecruiterStatus string

// Recruiter statuses in ascending order.
const (
	StatusAutoRejected RecruiterStatus = "AUTO_REJECTED"
	StatusMaybe        RecruiterStatus = "MAYBE"
	StatusReview       RecruiterStatus = "REVIEW"
	StatusShortlist    RecruiterStatus = "SHORTLIST"
)

// ScoreBundle combines the three sub-scores into the overall verdict.
type ScoreBundle struct {
	Keyword    int             `json:"keyword_score"`
	Semantic   int             `json:"semantic_score"`
	Structural int             `json:"structure_score"`
	Overall    int             `json:"overall_score"`
	Status     RecruiterStatus `json:"recruiter_status"`
	Rank       string          `json:"rank_estimate"`
}
