// Package sections splits normalized text into named regions using a
// controlled vocabulary of section headers.
package sections

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Segment splits text into sections. Lines before the first header go to the
// preamble bucket. A header seen twice accumulates into the same section.
// Inside a skills section, "Languages: Go, SQL" style lines stay content.
func Segment(text string, vocab Vocabulary) types.Sections {
	return SegmentFrom(text, vocab, types.PreambleSection)
}

// SegmentFrom is Segment with a custom name for the leading bucket.
func SegmentFrom(text string, vocab Vocabulary, initial string) types.Sections {
	var (
		result  types.Sections
		index   = map[string]int{}
		current = initial
		buffer  []string
	)

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		content := strings.Join(buffer, "\n")
		if i, ok := index[current]; ok {
			result[i].Content += "\n" + content
		} else {
			index[current] = len(result)
			result = append(result, types.Section{Name: current, Content: content})
		}
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if header, ok := vocab.Match(trimmed); ok && !(header.Inline != "" && isSkills(current)) {
			flush()
			current = header.Name
			if header.Inline != "" {
				buffer = append(buffer, header.Inline)
			}
			continue
		}

		buffer = append(buffer, trimmed)
	}
	flush()

	if result == nil {
		return types.Sections{}
	}
	return result
}

// IsVocabulary reports whether a résumé section name belongs to the header
// vocabulary. The preamble bucket counts as standard.
func IsVocabulary(name string) bool {
	return name == types.PreambleSection || ResumeVocabulary.Contains(name)
}

func isSkills(name string) bool {
	for _, alias := range SkillsAliases {
		if alias == name {
			return true
		}
	}
	return false
}
