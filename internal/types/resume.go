package types

// ContactInfo holds independently extracted contact fields. Empty means absent.
type ContactInfo struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ExperienceEntry is one position in the experience section.
type ExperienceEntry struct {
	Company string   `json:"company"`
	Role    string   `json:"role,omitempty"`
	Dates   string   `json:"dates,omitempty"`
	Bullets []string `json:"bullets"`
}

// EducationEntry is one degree in the education section.
type EducationEntry struct {
	Degree  string   `json:"degree"`
	School  string   `json:"school,omitempty"`
	Dates   string   `json:"dates,omitempty"`
	GPA     string   `json:"gpa,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ProjectEntry is one project in the projects section.
type ProjectEntry struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
}

// Resume is the structured model of a candidate document.
type Resume struct {
	RawText        string            `json:"raw_text"`
	Format         string            `json:"format"`
	Sections       Sections          `json:"sections"`
	Contact        ContactInfo       `json:"contact"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`
	WordCount      int               `json:"word_count"`
	EstimatedPages int               `json:"estimated_pages"`
}
