package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/types"
)

const plainResume = `Jane Doe
San Francisco, CA | jane@example.com | (555) 123-4567
https://linkedin.com/in/janedoe

Summary
Backend engineer focused on data platforms.

Experience
Acme Corp | Senior Engineer | Jan 2020 - Present
- Built PostgreSQL pipelines processing 2M rows a day
- Led migration to Kubernetes
Globex
Software Engineer, Jun 2016 - Dec 2019
- Wrote Go services

Education
B.S. Computer Science
State University | 2012 - 2016
GPA: 3.8
Dean's list

Skills
Languages: Go, Python, Golang
Tools: Docker; Kubernetes

Projects
ats-scorer
- Résumé scoring CLI

Certifications
AWS Solutions Architect`

func TestParseResume_PlainText(t *testing.T) {
	r := ParseResume(plainResume)

	assert.Equal(t, types.FormatText, r.Format)
	assert.Equal(t, []string{types.PreambleSection, "summary", "experience", "education", "skills", "projects", "certifications"}, r.Sections.Names())

	assert.Equal(t, "Jane Doe", r.Contact.Name)
	assert.Equal(t, "jane@example.com", r.Contact.Email)
	assert.Equal(t, "(555) 123-4567", r.Contact.Phone)
	assert.Equal(t, "https://linkedin.com/in/janedoe", r.Contact.LinkedIn)
	assert.Equal(t, "San Francisco, CA", r.Contact.Location)
	assert.Empty(t, r.Contact.GitHub)

	assert.Equal(t, []string{"Go", "Python", "Docker", "Kubernetes"}, r.Skills)
	assert.Equal(t, []string{"AWS Solutions Architect"}, r.Certifications)
	assert.Equal(t, 1, r.EstimatedPages)
	assert.Greater(t, r.WordCount, 50)
}

func TestExtractExperience(t *testing.T) {
	r := ParseResume(plainResume)

	require.Len(t, r.Experience, 2)

	assert.Equal(t, "Acme Corp", r.Experience[0].Company)
	assert.Equal(t, "Senior Engineer", r.Experience[0].Role)
	assert.Equal(t, "Jan 2020 - Present", r.Experience[0].Dates)
	assert.Equal(t, []string{"Built PostgreSQL pipelines processing 2M rows a day", "Led migration to Kubernetes"}, r.Experience[0].Bullets)

	assert.Equal(t, "Globex", r.Experience[1].Company)
	assert.Equal(t, "Software Engineer", r.Experience[1].Role)
	assert.Equal(t, "Jun 2016 - Dec 2019", r.Experience[1].Dates)
	assert.Equal(t, []string{"Wrote Go services"}, r.Experience[1].Bullets)
}

func TestExtractEducation(t *testing.T) {
	r := ParseResume(plainResume)

	require.Len(t, r.Education, 1)
	edu := r.Education[0]
	assert.Equal(t, "B.S. Computer Science", edu.Degree)
	assert.Equal(t, "State University", edu.School)
	assert.Equal(t, "2012 - 2016", edu.Dates)
	assert.Equal(t, "3.8", edu.GPA)
	assert.Equal(t, []string{"Dean's list"}, edu.Details)
}

func TestExtractProjects(t *testing.T) {
	r := ParseResume(plainResume)

	require.Len(t, r.Projects, 1)
	assert.Equal(t, "ats-scorer", r.Projects[0].Name)
	assert.Equal(t, []string{"Résumé scoring CLI"}, r.Projects[0].Bullets)
}

func TestParseResume_MissingSectionsDegrade(t *testing.T) {
	r := ParseResume("Jane Doe\nSome text without any headers")

	assert.Empty(t, r.Skills)
	assert.Empty(t, r.Experience)
	assert.Empty(t, r.Education)
	assert.Empty(t, r.Projects)
	assert.NotNil(t, r.Skills)
	assert.NotNil(t, r.Experience)
}

func TestExtractSkills_SeparatorsAndCategories(t *testing.T) {
	secs := types.Sections{{Name: "technical skills", Content: "• Go | Rust\nCloud: AWS, GCP\nx"}}
	assert.Equal(t, []string{"Go", "Rust", "AWS", "GCP"}, ExtractSkills(secs))
}

const latexResume = `\documentclass{article}
\begin{document}
\textbf{Jane Doe} \\ jane@example.com
\section{Experience}
\resumeSubheading{Acme Corp}{Jan 2020 -- Present}{Senior Engineer}{Remote}
\resumeItemListStart
\resumeItem{Built \textbf{PostgreSQL} pipelines}
\resumeItemListEnd
\section{Skills}
\begin{itemize}[leftmargin=0.15in, label={}]
\item{\textbf{Languages}{: Go, Python}}
\end{itemize}
\end{document}`

func TestParseResume_Latex(t *testing.T) {
	r := ParseResume(latexResume)

	assert.Equal(t, types.FormatLaTeX, r.Format)
	assert.Equal(t, []string{types.PreambleSection, "experience", "skills"}, r.Sections.Names())
	assert.Equal(t, "jane@example.com", r.Contact.Email)
	assert.Equal(t, []string{"Go", "Python"}, r.Skills)

	require.Len(t, r.Experience, 1)
	assert.Equal(t, "Acme Corp", r.Experience[0].Company)
	assert.Equal(t, "Senior Engineer", r.Experience[0].Role)
	assert.Equal(t, "Jan 2020 -- Present", r.Experience[0].Dates)
	assert.Equal(t, []string{"Built PostgreSQL pipelines"}, r.Experience[0].Bullets)
	assert.NotContains(t, r.RawText, "leftmargin")
}
