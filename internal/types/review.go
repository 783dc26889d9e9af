package types

// BulletRewrite is a suggested rewording of one résumé bullet.
type BulletRewrite struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason,omitempty"`
}

// KeywordHint says where and how a missing keyword could be added.
type KeywordHint struct {
	Keyword string `json:"keyword"`
	Where   string `json:"where"`
	How     string `json:"how"`
}

// Review is the qualitative commentary produced by the generative service.
type Review struct {
	QualitativeFit        string          `json:"qualitative_fit"`
	FitExplanation        string          `json:"fit_explanation"`
	Strengths             []string        `json:"strengths"`
	Gaps                  []string        `json:"gaps"`
	BulletRewrites        []BulletRewrite `json:"bullet_rewrites"`
	MissingKeywordsToAdd  []KeywordHint   `json:"missing_keywords_to_add"`
	SkillsSectionRewrite  string          `json:"skills_section_rewrite,omitempty"`
	InterviewReadiness    int             `json:"interview_readiness"`
	InterviewTopics       []string        `json:"interview_topics"`
	OverallRecommendation string          `json:"overall_recommendation"`
}
