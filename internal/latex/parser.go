package latex

import (
	"regexp"
	"strings"
)

// Bullet is one item line inside an experience or project entry. Line is the
// 1-indexed line number in the original source and is never renumbered.
type Bullet struct {
	Text string `json:"text"`
	Raw  string `json:"raw"`
	Line int    `json:"line"`
}

// Section is a \section region. StartLine is the line of the \section command
// and EndLine the last line before the next section or the document end.
type Section struct {
	Name      string `json:"name"`
	Plain     string `json:"plain"`
	Raw       string `json:"raw"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// ExperienceBlock is one \resumeSubheading entry.
type ExperienceBlock struct {
	Section string   `json:"section"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Dates   string   `json:"dates"`
	Raw     string   `json:"raw"`
	Bullets []Bullet `json:"bullets"`
}

// ProjectBlock is one \resumeProjectHeading entry.
type ProjectBlock struct {
	Section string   `json:"section"`
	Name    string   `json:"name"`
	Raw     string   `json:"raw"`
	Bullets []Bullet `json:"bullets"`
}

// StructuralMap is the line-addressable parse of a LaTeX résumé.
type StructuralMap struct {
	Source     string            `json:"-"`
	Preamble   string            `json:"preamble"`
	Header     string            `json:"header"`
	Postamble  string            `json:"postamble"`
	Sections   []Section         `json:"sections"`
	Experience []ExperienceBlock `json:"experience"`
	Projects   []ProjectBlock    `json:"projects"`
	Skills     *Section          `json:"skills,omitempty"`
	About      *Section          `json:"about,omitempty"`

	lines []string
}

// subheadingLookahead is how many following lines may carry \resumeSubheading arguments.
const subheadingLookahead = 3

var sectionCommand = regexp.MustCompile(`^\s*\\section\*?\{([^}]+)\}`)

// Parse builds the structural map of source. Line numbers refer to source
// split on "\n" and stay valid only against the unedited source.
func Parse(source string) *StructuralMap {
	lines := strings.Split(source, "\n")
	m := &StructuralMap{Source: source, lines: lines}

	bodyStart := 0
	for i, line := range lines {
		if strings.Contains(line, `\begin{document}`) {
			bodyStart = i + 1
			break
		}
	}

	bodyEnd := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], `\end{document}`) {
			bodyEnd = i
			break
		}
	}
	if bodyEnd < bodyStart {
		bodyEnd = bodyStart
	}

	m.Preamble = strings.Join(lines[:bodyStart], "\n")
	m.Postamble = strings.Join(lines[bodyEnd:], "\n")

	current := -1
	for i := bodyStart; i < bodyEnd; i++ {
		match := sectionCommand.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		if current >= 0 {
			m.Sections = append(m.Sections, m.newSection(lines[current], current, i))
		} else {
			m.Header = strings.Join(lines[bodyStart:i], "\n")
		}
		current = i
	}
	if current >= 0 {
		m.Sections = append(m.Sections, m.newSection(lines[current], current, bodyEnd))
	} else {
		m.Header = strings.Join(lines[bodyStart:bodyEnd], "\n")
	}

	for i := range m.Sections {
		name := strings.ToLower(m.Sections[i].Name)
		switch {
		case m.Skills == nil && (strings.Contains(name, "skill") || strings.Contains(name, "technolog")):
			m.Skills = &m.Sections[i]
		case m.About == nil && (strings.Contains(name, "about") || strings.Contains(name, "summary") || strings.Contains(name, "objective")):
			m.About = &m.Sections[i]
		}
	}

	if sec := m.FindSection("experience"); sec != nil {
		m.Experience = m.experienceBlocks(sec)
	}
	if sec := m.FindSection("project"); sec != nil {
		m.Projects = m.projectBlocks(sec)
	}

	return m
}

// newSection covers the 0-indexed half-open line range [from, to).
func (m *StructuralMap) newSection(header string, from, to int) Section {
	raw := strings.Join(m.lines[from:to], "\n")
	return Section{
		Name:      strings.TrimSpace(sectionCommand.FindStringSubmatch(header)[1]),
		Plain:     ToPlain(raw),
		Raw:       raw,
		StartLine: from + 1,
		EndLine:   to,
	}
}

// FindSection returns the first section whose name contains substr, case-insensitively.
func (m *StructuralMap) FindSection(substr string) *Section {
	substr = strings.ToLower(substr)
	for i := range m.Sections {
		if strings.Contains(strings.ToLower(m.Sections[i].Name), substr) {
			return &m.Sections[i]
		}
	}
	return nil
}

// Line returns the original 1-indexed source line, or "" when out of range.
func (m *StructuralMap) Line(n int) string {
	if n < 1 || n > len(m.lines) {
		return ""
	}
	return m.lines[n-1]
}

// LineCount is the number of lines in the original source.
func (m *StructuralMap) LineCount() int {
	return len(m.lines)
}

func (m *StructuralMap) experienceBlocks(sec *Section) []ExperienceBlock {
	var (
		blocks []ExperienceBlock
		cur    *ExperienceBlock
		raw    []string
	)
	flush := func() {
		if cur != nil {
			cur.Raw = strings.Join(raw, "\n")
			blocks = append(blocks, *cur)
		}
	}

	for i := sec.StartLine - 1; i < sec.EndLine && i < len(m.lines); i++ {
		line := m.lines[i]
		if findMacro(line, `\resumeSubheading`) >= 0 {
			flush()
			cur = &ExperienceBlock{Section: sec.Name, Bullets: []Bullet{}}
			if args, _, ok := macroArgs(m.window(i, sec.EndLine), `\resumeSubheading`, 4); ok {
				cur.Company = ToPlain(args[0])
				cur.Dates = ToPlain(args[1])
				cur.Role = ToPlain(args[2])
			}
			raw = []string{line}
			continue
		}
		if cur == nil {
			continue
		}
		raw = append(raw, line)
		if b, ok := bulletAt(line, i+1); ok {
			cur.Bullets = append(cur.Bullets, b)
		}
	}
	flush()
	return blocks
}

func (m *StructuralMap) projectBlocks(sec *Section) []ProjectBlock {
	var (
		blocks []ProjectBlock
		cur    *ProjectBlock
		raw    []string
	)
	flush := func() {
		if cur != nil {
			cur.Raw = strings.Join(raw, "\n")
			blocks = append(blocks, *cur)
		}
	}

	for i := sec.StartLine - 1; i < sec.EndLine && i < len(m.lines); i++ {
		line := m.lines[i]
		if findMacro(line, `\resumeProjectHeading`) >= 0 {
			flush()
			cur = &ProjectBlock{Section: sec.Name, Bullets: []Bullet{}}
			if args, _, ok := macroArgs(m.window(i, sec.EndLine), `\resumeProjectHeading`, 1); ok {
				cur.Name = ToPlain(args[0])
			}
			raw = []string{line}
			continue
		}
		if cur == nil {
			continue
		}
		raw = append(raw, line)
		if b, ok := bulletAt(line, i+1); ok {
			cur.Bullets = append(cur.Bullets, b)
		}
	}
	flush()
	return blocks
}

// window joins line i with up to subheadingLookahead following lines, stopping at limit.
func (m *StructuralMap) window(i, limit int) string {
	end := i + 1 + subheadingLookahead
	if end > limit {
		end = limit
	}
	if end > len(m.lines) {
		end = len(m.lines)
	}
	if end <= i {
		end = i + 1
	}
	return strings.Join(m.lines[i:end], "\n")
}

var itemCommand = regexp.MustCompile(`^\s*\\item\b\s*(.*)$`)

// bulletAt recognizes \resumeItem{...} and bare \item lines.
func bulletAt(line string, lineNo int) (Bullet, bool) {
	if args, _, ok := macroArgs(line, `\resumeItem`, 1); ok {
		return Bullet{Text: ToPlain(args[0]), Raw: strings.TrimSpace(line), Line: lineNo}, true
	}
	if match := itemCommand.FindStringSubmatch(line); match != nil {
		if text := ToPlain(match[1]); text != "" {
			return Bullet{Text: text, Raw: strings.TrimSpace(line), Line: lineNo}, true
		}
	}
	return Bullet{}, false
}

// findMacro returns the index of macro in s where it is not the prefix of a
// longer command name, or -1.
func findMacro(s, macro string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], macro)
		if i < 0 {
			return -1
		}
		end := offset + i + len(macro)
		if end >= len(s) || !isLetter(s[end]) {
			return offset + i
		}
		offset = end
	}
}

// macroArgs reads n brace-delimited arguments following macro in s. It
// returns the arguments, the offset just past the last one, and whether all
// n were found.
func macroArgs(s, macro string, n int) ([]string, int, bool) {
	start := findMacro(s, macro)
	if start < 0 {
		return nil, 0, false
	}
	pos := start + len(macro)

	args := make([]string, 0, n)
	for len(args) < n {
		for pos < len(s) && isSpace(s[pos]) {
			pos++
		}
		if pos >= len(s) || s[pos] != '{' {
			return args, pos, false
		}

		open := pos
		depth := 0
		closed := false
		for ; pos < len(s) && !closed; pos++ {
			switch s[pos] {
			case '\\':
				pos++
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					args = append(args, s[open+1:pos])
					closed = true
				}
			}
		}
		if !closed {
			return args, pos, false
		}
	}
	return args, pos, true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
