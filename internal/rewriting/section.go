package rewriting

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/sections"
)

var (
	summaryAliases = sections.SummaryAliases
	skillsAliases  = sections.SkillsAliases
)

// plainSection locates a replaced section in plain text.
type plainSection struct {
	name string
	line int
	body string
}

// replaceSection swaps the body under the first header named by one of
// aliases for content. The body ends at the next recognized header or the
// next short upper-case line. Blank lines before that header are kept, and
// so is any label before an inline colon, as in "Skills: Go, SQL".
func replaceSection(text string, aliases []string, content string) (string, plainSection, bool) {
	lines := strings.Split(text, "\n")
	start := -1
	var header sections.Header
	for i, line := range lines {
		h, ok := sections.ResumeVocabulary.Match(line)
		if ok && contains(aliases, h.Name) {
			start, header = i, h
			break
		}
	}
	if start < 0 {
		return text, plainSection{}, false
	}

	end := start + 1
	for end < len(lines) && !isHeaderLine(lines[end]) {
		end++
	}
	for end-1 > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	body := strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
	headerLine := lines[start]
	if header.Inline != "" {
		body = strings.TrimSpace(header.Inline + "\n" + body)
		headerLine = headerLine[:strings.Index(headerLine, ":")+1]
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:start]...)
	out = append(out, headerLine, content)
	out = append(out, lines[end:]...)

	return strings.Join(out, "\n"), plainSection{name: header.Name, line: start + 1, body: body}, true
}

func isHeaderLine(line string) bool {
	if _, ok := sections.ResumeVocabulary.Match(line); ok {
		return true
	}
	return sections.LooksLikeHeader(line)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
