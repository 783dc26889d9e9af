package latex

import (
	"sort"
	"strings"
)

// EditPlan collects replacements keyed by original line numbers. Edits never
// shift each other: every key refers to the unedited source.
type EditPlan struct {
	lines    map[int]string
	sections map[int]sectionEdit
}

type sectionEdit struct {
	end     int
	content string
}

// NewEditPlan returns an empty plan.
func NewEditPlan() *EditPlan {
	return &EditPlan{lines: map[int]string{}, sections: map[int]sectionEdit{}}
}

// ReplaceLine replaces original line n with text. A later call for the same
// line wins.
func (p *EditPlan) ReplaceLine(n int, text string) {
	p.lines[n] = text
}

// ReplaceSection keeps the section's \section line and replaces the rest of
// its body with content.
func (p *EditPlan) ReplaceSection(sec Section, content string) {
	p.sections[sec.StartLine] = sectionEdit{end: sec.EndLine, content: content}
}

// Empty reports whether the plan has no edits.
func (p *EditPlan) Empty() bool {
	return p == nil || (len(p.lines) == 0 && len(p.sections) == 0)
}

// Lines returns the targeted line numbers in ascending order.
func (p *EditPlan) Lines() []int {
	out := make([]int, 0, len(p.lines))
	for n := range p.lines {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Assemble applies plan to the original source in one pass and returns the
// new source. Lines outside the source range are ignored. Line edits that
// fall inside a replaced section body are dropped with it.
func Assemble(m *StructuralMap, plan *EditPlan) string {
	if plan.Empty() {
		return m.Source
	}

	removed := make(map[int]bool)
	for start, edit := range plan.sections {
		for n := start + 1; n <= edit.end; n++ {
			removed[n] = true
		}
	}

	out := make([]string, 0, len(m.lines))
	for i, line := range m.lines {
		n := i + 1
		if removed[n] {
			continue
		}
		if replacement, ok := plan.lines[n]; ok {
			line = replacement
		}
		out = append(out, line)
		if edit, ok := plan.sections[n]; ok {
			out = append(out, edit.content)
		}
	}
	return strings.Join(out, "\n")
}

// ReplaceBulletText rewrites the argument of the bullet macro on line with
// text, escaping it for LaTeX. Indentation and anything after the macro are
// kept. A bare \item line has its content replaced.
func ReplaceBulletText(line, text string) string {
	return ReplaceBulletLatex(line, EscapeLaTeX(strings.TrimSpace(text)))
}

// ReplaceBulletLatex is ReplaceBulletText for content that is already LaTeX.
// A \resumeItem wrapper around content is removed first.
func ReplaceBulletLatex(line, content string) string {
	content = UnwrapBullet(content)

	if start := findMacro(line, `\resumeItem`); start >= 0 {
		if _, end, ok := macroArgs(line, `\resumeItem`, 1); ok {
			return line[:start] + `\resumeItem{` + content + `}` + line[end:]
		}
	}

	if loc := itemCommand.FindStringSubmatchIndex(line); loc != nil {
		return line[:loc[2]] + content
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	return indent + `\resumeItem{` + content + `}`
}

// UnwrapBullet returns the argument of a \resumeItem macro that spans all of
// s, or s trimmed.
func UnwrapBullet(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `\resumeItem`) {
		return s
	}
	if args, end, ok := macroArgs(s, `\resumeItem`, 1); ok && strings.TrimSpace(s[end:]) == "" {
		return strings.TrimSpace(args[0])
	}
	return s
}
