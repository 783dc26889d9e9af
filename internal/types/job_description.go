package types

// KeywordCategory classifies a requirement keyword.
type KeywordCategory string

const (
	// CategoryRequired marks keywords found in required or qualification text.
	CategoryRequired KeywordCategory = "required"
	// CategoryPreferred marks every other keyword.
	CategoryPreferred KeywordCategory = "preferred"
)

// Keyword is a weighted requirement term. Weight is in [0,1].
type Keyword struct {
	Text     string          `json:"keyword"`
	Weight   float64         `json:"weight"`
	Category KeywordCategory `json:"category"`
}

// ExperienceLevel is the seniority a posting asks for.
type ExperienceLevel string

// Experience levels in ascending order.
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// JobDescription is the structured model of a requirements document.
type JobDescription struct {
	RawText          string          `json:"raw_text"`
	Title            string          `json:"title,omitempty"`
	Company          string          `json:"company,omitempty"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	Sections         Sections        `json:"sections"`
	Keywords         []Keyword       `json:"keywords"`
	RequiredSkills   []string        `json:"required_skills"`
	PreferredSkills  []string        `json:"preferred_skills"`
	Responsibilities []string        `json:"responsibilities"`
	Qualifications   []string        `json:"qualifications"`
	Benefits         []string        `json:"benefits,omitempty"`
	KeywordSource    string          `json:"keyword_source"` // "phrase_scorer" or "fallback"
}
