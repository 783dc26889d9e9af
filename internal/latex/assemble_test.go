package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_NoEditsIsIdentity(t *testing.T) {
	sources := []string{
		sampleSource,
		strings.ReplaceAll(sampleSource, "\n", "\r\n"),
		"\\begin{document}\n\\end{document}",
		"",
	}

	for _, src := range sources {
		m := Parse(src)
		assert.Equal(t, src, Assemble(m, nil))
		assert.Equal(t, src, Assemble(m, NewEditPlan()))

		noop := NewEditPlan()
		noop.ReplaceLine(1, m.Line(1))
		assert.Equal(t, src, Assemble(m, noop))
	}
}

func TestAssemble_ReplaceLineDoesNotShiftOthers(t *testing.T) {
	m := Parse(sampleSource)

	plan := NewEditPlan()
	plan.ReplaceLine(16, `        \resumeItem{Cut deploy time by 40\% with Docker and Kubernetes}`)
	plan.ReplaceSection(*m.About, "Backend engineer focused on PostgreSQL.\nSecond line.")
	plan.ReplaceLine(20, `        \resumeItem{Wrote Go microservices}`)

	out := Assemble(m, plan)
	lines := strings.Split(out, "\n")
	original := strings.Split(sampleSource, "\n")

	assert.Equal(t, `\section{Summary}`, lines[6])
	assert.Equal(t, "Backend engineer focused on PostgreSQL.", lines[7])
	assert.Equal(t, "Second line.", lines[8])
	assert.NotContains(t, out, "building data platforms")

	// the about body grew by one line, so later lines sit one further down
	assert.Equal(t, original[14], lines[15])
	assert.Equal(t, `        \resumeItem{Cut deploy time by 40\% with Docker and Kubernetes}`, lines[16])
	assert.Equal(t, `        \resumeItem{Wrote Go microservices}`, lines[20])
	assert.Equal(t, len(original)+1, len(lines))
}

func TestAssemble_EditOrderIndependent(t *testing.T) {
	m := Parse(sampleSource)

	a := NewEditPlan()
	a.ReplaceLine(15, "X")
	a.ReplaceLine(20, "Y")

	b := NewEditPlan()
	b.ReplaceLine(20, "Y")
	b.ReplaceLine(15, "X")

	assert.Equal(t, Assemble(m, a), Assemble(m, b))
	assert.Equal(t, []int{15, 20}, a.Lines())
}

func TestAssemble_SectionReplacementKeepsHeaderAndPostamble(t *testing.T) {
	m := Parse(sampleSource)
	require.NotNil(t, m.Skills)

	plan := NewEditPlan()
	plan.ReplaceSection(*m.Skills, "NEW SKILLS")
	plan.ReplaceLine(30, "dropped with the section body")
	plan.ReplaceLine(999, "ignored")

	out := Assemble(m, plan)

	assert.True(t, strings.HasSuffix(out, "\\section{Technical Skills}\nNEW SKILLS\n\\end{document}\n"))
	assert.NotContains(t, out, "dropped with the section body")
	assert.NotContains(t, out, "ignored")
}

func TestReplaceBulletText(t *testing.T) {
	tests := []struct {
		name string
		line string
		text string
		want string
	}{
		{
			name: "resume item keeps indent and tail",
			line: `        \resumeItem{Old text} % note`,
			text: "Built R&D tools",
			want: `        \resumeItem{Built R\&D tools} % note`,
		},
		{
			name: "bare item",
			line: `  \item Old text`,
			text: "New text",
			want: `  \item New text`,
		},
		{
			name: "unknown line wraps",
			line: `    something`,
			text: "New",
			want: `    \resumeItem{New}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceBulletText(tt.line, tt.text))
		})
	}
}

func TestReplaceBulletLatex(t *testing.T) {
	line := `    \resumeItem{Old text}`

	assert.Equal(t, `    \resumeItem{Built \textbf{Go} services, 40\% faster}`,
		ReplaceBulletLatex(line, `Built \textbf{Go} services, 40\% faster`))
	assert.Equal(t, `    \resumeItem{Wrapped}`,
		ReplaceBulletLatex(line, ` \resumeItem{Wrapped} `))
}

func TestUnwrapBullet(t *testing.T) {
	assert.Equal(t, "plain", UnwrapBullet("  plain "))
	assert.Equal(t, `a \textbf{b}`, UnwrapBullet(`\resumeItem{a \textbf{b}}`))
	assert.Equal(t, `\resumeItem{a} trailing`, UnwrapBullet(`\resumeItem{a} trailing`))
}
