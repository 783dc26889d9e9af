package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Header is a recognized section header line.
type Header struct {
	Name string
	// Inline holds text that followed the header on the same line, as in "Skills: Go, SQL".
	Inline string
}

// Vocabulary decides whether a line is a section header.
type Vocabulary interface {
	Match(line string) (Header, bool)
}

// ResumeVocabulary is the controlled vocabulary of résumé section names. Order
// matters: the first entry that matches a line names the section.
var ResumeVocabulary = HeaderList{
	"summary", "about", "objective", "profile",
	"experience", "work experience", "employment", "professional experience",
	"education", "academic", "academics",
	"skills", "technical skills", "core competencies", "technologies",
	"projects", "personal projects", "academic projects",
	"certifications", "certificates", "licenses",
	"awards", "achievements", "honors",
	"publications", "research",
	"volunteer", "volunteering", "community",
	"languages", "interests", "hobbies",
}

// Section alias groups, scanned in order by extractors and the structure rubric.
var (
	SummaryAliases       = []string{"summary", "about", "objective", "profile"}
	ExperienceAliases    = []string{"experience", "work experience", "employment", "professional experience"}
	EducationAliases     = []string{"education", "academic", "academics"}
	SkillsAliases        = []string{"skills", "technical skills", "core competencies", "technologies"}
	ProjectsAliases      = []string{"projects", "personal projects", "academic projects"}
	CertificationAliases = []string{"certifications", "certificates", "licenses"}
)

// HeaderList is a vocabulary of literal header names.
type HeaderList []string

var (
	nonLetters = regexp.MustCompile(`[^a-z\s]`)
	listMarker = regexp.MustCompile(`^(?:[-•·*▪]|\d+[.)])\s`)
	datedLine  = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b|\bpresent\b`)
)

// CleanHeader lowercases a line and strips everything but letters and whitespace.
func CleanHeader(line string) string {
	return strings.TrimSpace(nonLetters.ReplaceAllString(strings.ToLower(line), ""))
}

// Contains reports whether name is in the list.
func (h HeaderList) Contains(name string) bool {
	for _, header := range h {
		if header == name {
			return true
		}
	}
	return false
}

// Match recognizes a header when the cleaned line equals a vocabulary entry,
// when the line starts with an entry followed by a colon or a short qualifier
// such as "& Internships", or when a short upper-case line contains an entry.
func (h HeaderList) Match(line string) (Header, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Header{}, false
	}
	lower := strings.ToLower(trimmed)
	clean := CleanHeader(trimmed)

	for _, header := range h {
		if clean == header {
			return Header{Name: header}, true
		}
		if rest, ok := strings.CutPrefix(lower, header); ok {
			rest = strings.TrimSpace(rest)
			if strings.HasPrefix(rest, ":") {
				inline := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
				return Header{Name: header, Inline: inline}, true
			}
			if qualifiedHeader(rest) {
				return Header{Name: header}, true
			}
		}
	}

	if isShortUpper(trimmed) {
		for _, header := range h {
			if strings.Contains(clean, header) {
				return Header{Name: header}, true
			}
		}
	}

	return Header{}, false
}

// maxQualifierWords bounds the tail of a prefix-matched header.
const maxQualifierWords = 4

// qualifiedHeader reports whether rest, the text after a vocabulary entry,
// starts with a non-letter and is short enough to be part of the header.
// "Experienced engineer" fails the first test.
func qualifiedHeader(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return len(strings.Fields(rest)) <= maxQualifierWords
}

// LooksLikeHeader reports whether a line has the shape of a section header
// (short and upper case) whether or not its name is known.
func LooksLikeHeader(line string) bool {
	return isShortUpper(strings.TrimSpace(line))
}

// isShortUpper reports an all-caps line of at most four words and more than two characters.
func isShortUpper(line string) bool {
	if len(line) <= 2 || len(strings.Fields(line)) > 4 {
		return false
	}
	hasCased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// PatternHeader maps a header pattern to a section name.
type PatternHeader struct {
	Name    string
	Pattern *regexp.Regexp
}

// PatternVocabulary recognizes headers by regular expression. Patterns are
// tried in order and the first hit wins. Lines longer than MaxWords words
// are only headers when they end with a colon. List items are never headers.
type PatternVocabulary struct {
	Headers  []PatternHeader
	MaxWords int
}

// RequirementHeaders is the job-description vocabulary.
var RequirementHeaders = PatternVocabulary{
	Headers: []PatternHeader{
		{Name: "required", Pattern: regexp.MustCompile(`(?:required|must have|minimum|essential)\s*(?:skills|qualifications|requirements)`)},
		{Name: "preferred", Pattern: regexp.MustCompile(`(?:preferred|nice to have|bonus|desired|ideal)\s*(?:skills|qualifications)`)},
		{Name: "responsibilities", Pattern: regexp.MustCompile(`(?:responsibilities|what you.ll do|role|duties|key responsibilities)`)},
		{Name: "qualifications", Pattern: regexp.MustCompile(`(?:qualifications|requirements|what we.re looking for|who you are)`)},
		{Name: "description", Pattern: regexp.MustCompile(`(?:about the role|overview|description|summary)`)},
		{Name: "benefits", Pattern: regexp.MustCompile(`(?:benefits|perks|what we offer)`)},
	},
	MaxWords: 6,
}

// Match implements Vocabulary.
func (v PatternVocabulary) Match(line string) (Header, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Header{}, false
	}

	if listMarker.MatchString(trimmed) {
		return Header{}, false
	}

	headerish := strings.HasSuffix(trimmed, ":") || v.MaxWords <= 0 || len(strings.Fields(trimmed)) <= v.MaxWords
	if !headerish {
		return Header{}, false
	}

	lower := strings.ToLower(trimmed)
	for _, h := range v.Headers {
		if h.Pattern.MatchString(lower) {
			return Header{Name: h.Name}, true
		}
	}
	return Header{}, false
}

var entryMarks = regexp.MustCompile(`[\d,|@]`)

// UnrecognizedHeaders returns short upper-case lines that look like section
// headers but are not in the list. Scanning starts after the first recognized
// header so an upper-case name at the top is not counted. Entry lines are
// skipped: lines holding digits or separators, runs of adjacent upper-case
// lines such as a company over a title, and lines directly above a dated line.
func (h HeaderList) UnrecognizedHeaders(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	candidate := func(i int) bool {
		if i < 0 || i >= len(lines) || !isShortUpper(lines[i]) {
			return false
		}
		_, known := h.Match(lines[i])
		return !known
	}

	var (
		out     []string
		started bool
	)
	for i, line := range lines {
		if _, ok := h.Match(line); ok {
			started = true
			continue
		}
		if !started || !candidate(i) || len(CleanHeader(line)) <= 3 {
			continue
		}
		if entryMarks.MatchString(line) || candidate(i-1) || candidate(i+1) {
			continue
		}
		if i+1 < len(lines) && datedLine.MatchString(lines[i+1]) {
			continue
		}
		out = append(out, line)
	}
	return out
}
