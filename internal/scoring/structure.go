// Package scoring computes the structural and semantic sub-scores and folds
// them with the keyword score into the overall verdict.
package scoring

import (
	"fmt"
	"regexp"

	"github.com/jonathan/ats-scorer/internal/sections"
	"github.com/jonathan/ats-scorer/internal/types"
)

var dateToken = regexp.MustCompile(`(\w+\s+\d{4}|\d{1,2}/\d{4}|\d{4})`)

type rubricItem struct {
	ok     bool
	points int
	issue  string
}

func award(items []rubricItem, issues *[]string) int {
	total := 0
	for _, item := range items {
		if item.ok {
			total += item.points
			continue
		}
		*issues = append(*issues, item.issue)
	}
	return total
}

// ScoreStructure applies the fixed structural rubric: contact completeness,
// section presence, length band and formatting, 25 points each.
func ScoreStructure(r *types.Resume) types.StructureResult {
	issues := []string{}
	d := types.StructureDetails{
		HasName:        r.Contact.Name != "",
		HasEmail:       r.Contact.Email != "",
		HasPhone:       r.Contact.Phone != "",
		HasLinkedIn:    r.Contact.LinkedIn != "",
		HasGitHub:      r.Contact.GitHub != "" || r.Contact.Portfolio != "",
		HasSummary:     r.Sections.HasAny(sections.SummaryAliases...),
		HasExperience:  r.Sections.HasAny(sections.ExperienceAliases...),
		HasEducation:   r.Sections.HasAny(sections.EducationAliases...),
		HasSkills:      r.Sections.HasAny(sections.SkillsAliases...),
		HasProjects:    r.Sections.HasAny(sections.ProjectsAliases...),
		WordCount:      r.WordCount,
		EstimatedPages: r.EstimatedPages,
	}

	contact := award([]rubricItem{
		{d.HasName, 5, "No name detected at the top of resume"},
		{d.HasEmail, 5, "No email address found"},
		{d.HasPhone, 5, "No phone number found"},
		{d.HasLinkedIn, 5, "No LinkedIn URL found"},
		{d.HasGitHub, 5, "No GitHub/Portfolio URL found"},
	}, &issues)

	present := award([]rubricItem{
		{d.HasSummary, 4, "Missing Summary/About section"},
		{d.HasExperience, 6, "Missing Experience section"},
		{d.HasEducation, 5, "Missing Education section"},
		{d.HasSkills, 5, "Missing Skills section"},
		{d.HasProjects, 5, "Missing Projects section"},
	}, &issues)

	length, issue := lengthBand(r.WordCount)
	if issue != "" {
		issues = append(issues, issue)
	}

	formatting := 10
	switch unknown := len(sections.ResumeVocabulary.UnrecognizedHeaders(r.RawText)); {
	case unknown == 0:
		formatting += 10
		d.HasStandardHeaders = true
	case unknown <= 2:
		formatting += 5
		issues = append(issues, "Some non-standard section headers detected")
	default:
		issues = append(issues, "Multiple non-standard section headers may confuse ATS")
	}
	if dateToken.MatchString(r.RawText) {
		formatting += 5
		d.HasDates = true
	} else {
		issues = append(issues, "No recognizable dates found")
	}

	d.FormattingIssues = issues
	return types.StructureResult{
		ContactScore:    contact,
		SectionsScore:   present,
		LengthScore:     length,
		FormattingScore: formatting,
		TotalScore:      contact + present + length + formatting,
		Details:         d,
	}
}

func lengthBand(words int) (int, string) {
	switch {
	case words >= 300 && words <= 800:
		return 25, ""
	case words >= 200 && words < 300:
		return 15, fmt.Sprintf("Resume length (%d words) is short for optimal ATS parsing", words)
	case words > 800 && words <= 1000:
		return 15, fmt.Sprintf("Resume length (%d words) is long for optimal ATS parsing", words)
	case words < 200:
		return 5, fmt.Sprintf("Resume length (%d words) is too short for ATS", words)
	default:
		return 5, fmt.Sprintf("Resume length (%d words) is too long for ATS", words)
	}
}
