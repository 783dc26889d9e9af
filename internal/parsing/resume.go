// Package parsing builds structured résumé and job-description models from
// normalized text with pattern-based extractors.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/latex"
	"github.com/jonathan/ats-scorer/internal/sections"
	"github.com/jonathan/ats-scorer/internal/types"
)

var (
	bulletPrefix   = regexp.MustCompile(`^(?:[•\-·*▪]|\d+\.)\s*`)
	experienceDate = regexp.MustCompile(`(?i)((?:\w+\s+)?\d{4}\s*[-–—]+\s*(?:(?:\w+\s+)?\d{4}|Present|Current))`)
	degreePattern  = regexp.MustCompile(`(?i)\b(?:bachelor|master|ph\.?d|b\.?s|m\.?s|b\.?a|m\.?a|mba|b\.?tech|m\.?tech|associate)(?:\b|\.)`)
	educationDate  = regexp.MustCompile(`(\d{4}\s*[-–—]+\s*(?:\d{4}|Present))`)
	gpaPattern     = regexp.MustCompile(`(?i)GPA[:\s]*([0-9.]+)`)
	skillCategory  = regexp.MustCompile(`^[^:]{1,40}:\s*(.+)$`)
)

// ParseResume builds the résumé model. LaTeX sources are rendered to plain
// text first; the structural map is built separately by the latex package.
func ParseResume(text string) *types.Resume {
	format := types.FormatText
	if latex.IsLatex(text) {
		format = types.FormatLaTeX
		text = latex.ToPlain(latex.Body(text))
	}

	text = ingestion.CleanText(text)
	secs := sections.Segment(text, sections.ResumeVocabulary)
	words := ingestion.WordCount(text)

	return &types.Resume{
		RawText:        text,
		Format:         format,
		Sections:       secs,
		Contact:        ExtractContact(text, secs),
		Skills:         ExtractSkills(secs),
		Experience:     ExtractExperience(secs),
		Education:      ExtractEducation(secs),
		Projects:       ExtractProjects(secs),
		Certifications: ExtractCertifications(secs),
		WordCount:      words,
		EstimatedPages: ingestion.EstimatePages(words),
	}
}

// ExtractSkills splits the skills section into individual skills. A
// "Category: a, b" line contributes only its items. Duplicates by canonical
// name are dropped.
func ExtractSkills(secs types.Sections) []string {
	text, ok := secs.First(sections.SkillsAliases...)
	if !ok {
		return []string{}
	}

	var skills []string
	for _, line := range strings.Split(text, "\n") {
		line = bulletPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if m := skillCategory.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		for _, part := range splitSkillLine(line) {
			part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ":"))
			if len(part) > 1 && len(part) < 50 {
				skills = append(skills, part)
			}
		}
	}
	return dedupeSkills(skills)
}

func splitSkillLine(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ',', ';', '•', '·', '|':
			return true
		}
		return false
	})
}

// ExtractExperience reads positions from the experience section. Header
// lines accumulate until the first bullet; after bullets, a line starting
// with an upper-case letter opens the next entry.
func ExtractExperience(secs types.Sections) []types.ExperienceEntry {
	text, ok := secs.First(sections.ExperienceAliases...)
	if !ok {
		return []types.ExperienceEntry{}
	}

	entries := []types.ExperienceEntry{}
	for _, lines := range splitEntries(text) {
		entry := types.ExperienceEntry{Company: lines[0], Bullets: []string{}}

		datesLine := -1
		for i, line := range lines {
			if dates := experienceDate.FindString(line); dates != "" {
				entry.Dates = dates
				entry.Role = trimSeparators(strings.Replace(line, dates, "", 1))
				datesLine = i
				break
			}
		}

		if fields := strings.Split(lines[0], "|"); len(fields) > 1 {
			entry.Company = strings.TrimSpace(fields[0])
			if datesLine <= 0 {
				entry.Role = strings.TrimSpace(fields[1])
				if entry.Dates != "" && strings.Contains(fields[1], entry.Dates) {
					entry.Role = ""
				}
			}
		} else if datesLine == 0 {
			entry.Company = entry.Role
			entry.Role = ""
		}

		for _, line := range lines[1:] {
			if ingestion.IsBulletLine(line) {
				entry.Bullets = append(entry.Bullets, bulletPrefix.ReplaceAllString(line, ""))
			}
		}

		if entry.Company != "" || entry.Role != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ExtractEducation reads degrees from the education section. A line naming a
// degree opens an entry; following lines supply dates, school, GPA and details.
func ExtractEducation(secs types.Sections) []types.EducationEntry {
	text, ok := secs.First(sections.EducationAliases...)
	if !ok {
		return []types.EducationEntry{}
	}

	var (
		entries []types.EducationEntry
		current *types.EducationEntry
	)
	for _, line := range nonEmptyLines(text) {
		if degreePattern.MatchString(line) || current == nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.EducationEntry{Degree: line}
			continue
		}

		switch {
		case educationDate.MatchString(line):
			dates := educationDate.FindString(line)
			current.Dates = dates
			if school := trimSeparators(strings.Replace(line, dates, "", 1)); school != "" {
				current.School = school
			}
		case gpaPattern.MatchString(line):
			current.GPA = gpaPattern.FindStringSubmatch(line)[1]
		default:
			current.Details = append(current.Details, line)
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	if entries == nil {
		return []types.EducationEntry{}
	}
	return entries
}

// ExtractProjects reads projects: a short non-bullet line names a project
// and the bullets under it describe it.
func ExtractProjects(secs types.Sections) []types.ProjectEntry {
	text, ok := secs.First(sections.ProjectsAliases...)
	if !ok {
		return []types.ProjectEntry{}
	}

	projects := []types.ProjectEntry{}
	var current *types.ProjectEntry
	for _, line := range nonEmptyLines(text) {
		if !ingestion.IsBulletLine(line) && len(line) < 100 {
			if current != nil {
				projects = append(projects, *current)
			}
			current = &types.ProjectEntry{Name: line, Bullets: []string{}}
			continue
		}
		if current != nil {
			current.Bullets = append(current.Bullets, bulletPrefix.ReplaceAllString(line, ""))
		}
	}
	if current != nil {
		projects = append(projects, *current)
	}
	return projects
}

// ExtractCertifications returns each line of the certifications section.
func ExtractCertifications(secs types.Sections) []string {
	text, ok := secs.First(sections.CertificationAliases...)
	if !ok {
		return []string{}
	}
	return nonEmptyLines(text)
}

func splitEntries(text string) [][]string {
	var (
		entries   [][]string
		current   []string
		inBullets bool
	)
	for _, line := range nonEmptyLines(text) {
		bullet := ingestion.IsBulletLine(line)
		if !bullet && inBullets && unicode.IsUpper([]rune(line)[0]) {
			entries = append(entries, current)
			current, inBullets = nil, false
		}
		if bullet {
			inBullets = true
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		entries = append(entries, current)
	}
	return entries
}

func nonEmptyLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func trimSeparators(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "|-–,"))
}
