package types

import "time"

// Analysis is the complete result of scoring one résumé against one job description.
type Analysis struct {
	ID          string          `json:"analysis_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Owner       string          `json:"owner,omitempty"`
	Scores      ScoreBundle     `json:"scores"`
	Keywords    KeywordReport   `json:"keyword_analysis"`
	Semantic    SemanticResult  `json:"semantic_analysis"`
	Structure   StructureResult `json:"structure_analysis"`
	Suggestions []Suggestion    `json:"suggestions"`
	Review      *Review         `json:"review,omitempty"`
	Resume      *Resume         `json:"parsed_resume,omitempty"`
	Job         *JobDescription `json:"parsed_jd,omitempty"`
}

// AnalysisSummary is the history-list view of an Analysis.
type AnalysisSummary struct {
	ID        string          `json:"analysis_id"`
	CreatedAt time.Time       `json:"created_at"`
	JobTitle  string          `json:"job_title,omitempty"`
	Company   string          `json:"company,omitempty"`
	Overall   int             `json:"overall_score"`
	Status    RecruiterStatus `json:"recruiter_status"`
}

// Summary derives the history-list view.
func (a *Analysis) Summary() AnalysisSummary {
	s := AnalysisSummary{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Overall:   a.Scores.Overall,
		Status:    a.Scores.Status,
	}
	if a.Job != nil {
		s.JobTitle = a.Job.Title
		s.Company = a.Job.Company
	}
	return s
}
