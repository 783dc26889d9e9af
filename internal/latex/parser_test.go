package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Line numbers referenced by the tests below are noted on the right.
const sampleSource = `\documentclass[letterpaper,11pt]{article}
\usepackage{hyperref}
\begin{document}
\begin{center}
  \textbf{Jane Doe} \\ \href{mailto:jane@example.com}{jane@example.com}
\end{center}
\section{Summary}
Backend engineer building data platforms. % reviewed 2024
\section{Experience}
  \resumeSubHeadingListStart
    \resumeSubheading
      {Acme Corp}{Jan 2020 -- Present}
      {Senior Engineer}{Remote}
      \resumeItemListStart
        \resumeItem{Built \textbf{PostgreSQL} pipelines processing 2M rows a day}
        \resumeItem{Cut deploy time by 40\% with Docker}
      \resumeItemListEnd
    \resumeSubheading{Globex}{2016 -- 2019}{Engineer}{NYC}
      \resumeItemListStart
        \resumeItem{Wrote Go services}
      \resumeItemListEnd
  \resumeSubHeadingListEnd
\section{Projects}
    \resumeProjectHeading{\textbf{ats-scorer} $|$ \emph{Go}}{2024}
      \resumeItemListStart
        \resumeItem{Résumé scoring CLI}
      \resumeItemListEnd
\section{Technical Skills}
 \begin{itemize}
    \item{\textbf{Languages}{: Go, Python}}
 \end{itemize}
\end{document}
`

func TestIsLatex(t *testing.T) {
	assert.True(t, IsLatex(sampleSource))
	assert.True(t, IsLatex(`\begin{document}hi\end{document}`))
	assert.False(t, IsLatex("Jane Doe\nExperience"))
}

func TestParse_Regions(t *testing.T) {
	m := Parse(sampleSource)

	assert.Contains(t, m.Preamble, `\documentclass`)
	assert.Contains(t, m.Preamble, `\begin{document}`)
	assert.Contains(t, m.Header, "Jane Doe")
	assert.Equal(t, "\\end{document}\n", m.Postamble)

	require.Len(t, m.Sections, 4)
	assert.Equal(t, []string{"Summary", "Experience", "Projects", "Technical Skills"},
		[]string{m.Sections[0].Name, m.Sections[1].Name, m.Sections[2].Name, m.Sections[3].Name})

	assert.Equal(t, 7, m.Sections[0].StartLine)
	assert.Equal(t, 8, m.Sections[0].EndLine)
	assert.Equal(t, 9, m.Sections[1].StartLine)
	assert.Equal(t, 22, m.Sections[1].EndLine)
	assert.Equal(t, 28, m.Sections[3].StartLine)
	assert.Equal(t, 31, m.Sections[3].EndLine)

	assert.Equal(t, "Summary\nBackend engineer building data platforms.", m.Sections[0].Plain)

	require.NotNil(t, m.Skills)
	assert.Equal(t, "Technical Skills", m.Skills.Name)
	require.NotNil(t, m.About)
	assert.Equal(t, "Summary", m.About.Name)
}

func TestParse_ExperienceBlocks(t *testing.T) {
	m := Parse(sampleSource)

	require.Len(t, m.Experience, 2)

	acme := m.Experience[0]
	assert.Equal(t, "Acme Corp", acme.Company)
	assert.Equal(t, "Senior Engineer", acme.Role)
	assert.Equal(t, "Jan 2020 -- Present", acme.Dates)
	require.Len(t, acme.Bullets, 2)
	assert.Equal(t, Bullet{
		Text: "Built PostgreSQL pipelines processing 2M rows a day",
		Raw:  `\resumeItem{Built \textbf{PostgreSQL} pipelines processing 2M rows a day}`,
		Line: 15,
	}, acme.Bullets[0])
	assert.Equal(t, "Cut deploy time by 40% with Docker", acme.Bullets[1].Text)
	assert.Equal(t, 16, acme.Bullets[1].Line)

	globex := m.Experience[1]
	assert.Equal(t, "Globex", globex.Company)
	assert.Equal(t, "Engineer", globex.Role)
	require.Len(t, globex.Bullets, 1)
	assert.Equal(t, 20, globex.Bullets[0].Line)
}

func TestParse_ProjectBlocks(t *testing.T) {
	m := Parse(sampleSource)

	require.Len(t, m.Projects, 1)
	assert.Equal(t, "ats-scorer | Go", m.Projects[0].Name)
	require.Len(t, m.Projects[0].Bullets, 1)
	assert.Equal(t, 26, m.Projects[0].Bullets[0].Line)
}

func TestParse_NoSections(t *testing.T) {
	m := Parse("\\begin{document}\nHello\n\\end{document}")

	assert.Empty(t, m.Sections)
	assert.Equal(t, "Hello", m.Header)
	assert.Nil(t, m.Skills)
	assert.Nil(t, m.Experience)
}

func TestToPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "comment", input: "text % comment", want: "text"},
		{name: "escaped percent", input: `40\% faster`, want: "40% faster"},
		{name: "href", input: `\href{https://x.io}{my site}`, want: "my site"},
		{name: "subheading", input: `\resumeSubheading{Acme}{2020}{Engineer}{Remote}`, want: "Acme | Engineer | 2020 | Remote"},
		{name: "section", input: `\section{Skills}Go`, want: "Skills\nGo"},
		{name: "styles", input: `\textbf{Go} and \textit{SQL}`, want: "Go and SQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPlain(tt.input))
		})
	}
}

func TestMacroArgs(t *testing.T) {
	args, _, ok := macroArgs(`\resumeItem{a {nested} \} b} tail`, `\resumeItem`, 1)
	require.True(t, ok)
	assert.Equal(t, []string{`a {nested} \} b`}, args)

	_, _, ok = macroArgs(`\resumeItemListStart`, `\resumeItem`, 1)
	assert.False(t, ok)

	_, _, ok = macroArgs(`\resumeItem{unclosed`, `\resumeItem`, 1)
	assert.False(t, ok)
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`a\b`, `a\textbackslash{}b`},
		{"R&D 100% #1 $5 x_y {z}", `R\&D 100\% \#1 \$5 x\_y \{z\}`},
		{"x^2 ~y", `x\textasciicircum{}2 \textasciitilde{}y`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}
