package parsing

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/sections"
	"github.com/jonathan/ats-scorer/internal/types"
)

// MaxKeywords caps the keyword set extracted from a job description.
const MaxKeywords = 30

// Keyword sources recorded on the parsed job description.
const (
	SourcePhraseScorer = "phrase_scorer"
	SourceFallback     = "fallback"
)

// Phrase is a scored key phrase.
type Phrase struct {
	Text   string  `json:"phrase"`
	Weight float64 `json:"weight"`
}

// PhraseScorer extracts weighted key phrases from a requirements document.
type PhraseScorer interface {
	ExtractKeyphrases(ctx context.Context, text string, maxN int) ([]Phrase, error)
}

// experienceLevels is scanned in order; the first phrase found decides the level.
var experienceLevels = []struct {
	level   types.ExperienceLevel
	phrases []string
}{
	{types.LevelEntry, []string{"entry level", "junior", "0-1 years", "0-2 years", "new grad", "graduate", "intern"}},
	{types.LevelMid, []string{"mid level", "mid-level", "2-4 years", "3-5 years", "2+ years", "3+ years"}},
	{types.LevelSenior, []string{"senior", "5+ years", "7+ years", "5-10 years", "lead", "principal", "staff"}},
	{types.LevelLead, []string{"lead", "manager", "director", "head of", "vp", "10+ years"}},
}

var (
	capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-zA-Z.+#]+(?:[ \t]+[A-Z][a-zA-Z.+#]+)*\b`)
	yearsPattern      = regexp.MustCompile(`(\d+)\+?\s*years`)
	listItemPrefix    = regexp.MustCompile(`^[-•·*▪\d.)\]]+\s*`)
	companyPattern    = regexp.MustCompile(`\b(?:at|join|about)\s+([A-Z][A-Za-z\s&]+?)(?:\s*[,.]|\s+is|\s+we)`)
	titleStopWords    = []string{"about", "description", "overview", "company"}
)

// ParseJobDescription builds the job-description model. Keywords come from
// scorer when it is set and succeeds; otherwise the deterministic fallback is
// used and the failure is logged.
func ParseJobDescription(ctx context.Context, text string, scorer PhraseScorer, logger *zap.Logger) *types.JobDescription {
	if logger == nil {
		logger = zap.NewNop()
	}

	text = ingestion.CleanText(text)
	secs := SegmentJobDescription(text)

	keywords, source := extractKeywords(ctx, text, scorer, logger)
	keywords = ClassifyKeywords(keywords, secs)

	jd := &types.JobDescription{
		RawText:          text,
		Title:            ExtractTitle(text),
		Company:          ExtractCompany(text),
		ExperienceLevel:  DetectExperienceLevel(text),
		Sections:         secs,
		Keywords:         keywords,
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Responsibilities: ExtractListItems(secs.Concat("responsibilities")),
		Qualifications:   ExtractListItems(secs.Concat("qualifications", "required")),
		Benefits:         ExtractListItems(secs.Concat("benefits")),
		KeywordSource:    source,
	}

	for _, kw := range keywords {
		if kw.Category == types.CategoryRequired {
			jd.RequiredSkills = append(jd.RequiredSkills, kw.Text)
		} else {
			jd.PreferredSkills = append(jd.PreferredSkills, kw.Text)
		}
	}

	return jd
}

// SegmentJobDescription splits a job description into requirement regions.
// Text before the first header is treated as the description.
func SegmentJobDescription(text string) types.Sections {
	return sections.SegmentFrom(text, sections.RequirementHeaders, "description")
}

func extractKeywords(ctx context.Context, text string, scorer PhraseScorer, logger *zap.Logger) ([]types.Keyword, string) {
	if scorer == nil {
		return FallbackKeywords(text), SourceFallback
	}

	phrases, err := scorer.ExtractKeyphrases(ctx, text, MaxKeywords)
	if err != nil || len(phrases) == 0 {
		logger.Warn("phrase scorer unavailable, using fallback keywords", zap.Error(err))
		return FallbackKeywords(text), SourceFallback
	}

	if len(phrases) > MaxKeywords {
		phrases = phrases[:MaxKeywords]
	}
	keywords := make([]types.Keyword, 0, len(phrases))
	for _, p := range phrases {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		keywords = append(keywords, types.Keyword{
			Text:     strings.TrimSpace(p.Text),
			Weight:   round3(math.Min(1, math.Max(0, p.Weight))),
			Category: types.CategoryPreferred,
		})
	}
	return keywords, SourcePhraseScorer
}

// FallbackKeywords counts capitalized phrases and weights each by its
// frequency relative to the most frequent one. Ties keep first-seen order.
func FallbackKeywords(text string) []types.Keyword {
	counts := map[string]int{}
	var order []string
	for _, phrase := range capitalizedPhrase.FindAllString(text, -1) {
		if len(strings.ToLower(phrase)) <= 2 {
			continue
		}
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}

	keywords := make([]types.Keyword, 0, len(order))
	if len(order) == 0 {
		return keywords
	}
	top := float64(counts[order[0]])
	for _, phrase := range order {
		keywords = append(keywords, types.Keyword{
			Text:     phrase,
			Weight:   round3(float64(counts[phrase]) / top),
			Category: types.CategoryPreferred,
		})
	}
	return keywords
}

// ClassifyKeywords marks a keyword required when its lowercase form occurs in
// the required or qualifications text, raising its weight by half (capped at 1).
func ClassifyKeywords(keywords []types.Keyword, secs types.Sections) []types.Keyword {
	required, _ := secs.Get("required")
	qualifications, _ := secs.Get("qualifications")
	requiredText := strings.ToLower(required + " " + qualifications)

	out := make([]types.Keyword, len(keywords))
	for i, kw := range keywords {
		if strings.Contains(requiredText, strings.ToLower(kw.Text)) {
			kw.Category = types.CategoryRequired
			kw.Weight = math.Min(1.0, kw.Weight*1.5)
		} else {
			kw.Category = types.CategoryPreferred
		}
		out[i] = kw
	}
	return out
}

// DetectExperienceLevel checks the level phrase table, then a "N years"
// mention, and defaults to mid.
func DetectExperienceLevel(text string) types.ExperienceLevel {
	lower := strings.ToLower(text)
	for _, entry := range experienceLevels {
		for _, phrase := range entry.phrases {
			if strings.Contains(lower, phrase) {
				return entry.level
			}
		}
	}

	if m := yearsPattern.FindStringSubmatch(lower); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case years <= 2:
				return types.LevelEntry
			case years <= 5:
				return types.LevelMid
			case years <= 10:
				return types.LevelSenior
			default:
				return types.LevelLead
			}
		}
	}

	return types.LevelMid
}

const maxTitleLength = 100

// ExtractTitle returns the first line among the first five that is at most
// maxTitleLength characters and is not company boilerplate.
func ExtractTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) > maxTitleLength {
			continue
		}
		lower := strings.ToLower(line)
		boilerplate := false
		for _, w := range titleStopWords {
			if strings.Contains(lower, w) {
				boilerplate = true
				break
			}
		}
		if !boilerplate {
			return line
		}
	}
	return ""
}

// ExtractCompany finds a company name introduced by "at", "join" or "about".
func ExtractCompany(text string) string {
	if m := companyPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractListItems strips list markers and keeps lines longer than ten characters.
func ExtractListItems(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = listItemPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if len(line) > 10 {
			items = append(items, line)
		}
	}
	return items
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
