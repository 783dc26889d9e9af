package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-scorer/internal/sections"
	"github.com/jonathan/ats-scorer/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
	}

	urlPattern = regexp.MustCompile(`https?://[^\s,)>\]]+|(?:www\.)?(?:linkedin|github)\.com/[^\s,)>\]]+`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:location|address|based in)\b[:\s]*(.+)`),
		regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)*,[ \t]*[A-Z]{2}\b(?: \d{5})?)`),
	}
)

// URLSet groups the URLs found in a document by destination.
type URLSet struct {
	LinkedIn []string
	GitHub   []string
	Other    []string
}

// ExtractEmails returns every email address in text, in order.
func ExtractEmails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// ExtractPhones returns phone numbers in text. North American formats are
// listed before international ones.
func ExtractPhones(text string) []string {
	var phones []string
	for _, p := range phonePatterns {
		for _, m := range p.FindAllString(text, -1) {
			phones = append(phones, strings.TrimSpace(m))
		}
	}
	return phones
}

// ExtractURLs classifies the URLs in text. Bare linkedin.com and github.com
// references are recognized without a scheme.
func ExtractURLs(text string) URLSet {
	var set URLSet
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".;")
		lower := strings.ToLower(u)
		switch {
		case strings.Contains(lower, "linkedin.com"):
			set.LinkedIn = append(set.LinkedIn, u)
		case strings.Contains(lower, "github.com"):
			set.GitHub = append(set.GitHub, u)
		default:
			set.Other = append(set.Other, u)
		}
	}
	return set
}

// ExtractName takes the first short line among the first five that carries
// no contact punctuation and is not a section header.
func ExtractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsAny(line, "@+()") || strings.Contains(line, "http") {
			continue
		}
		if _, isHeader := sections.ResumeVocabulary.Match(line); isHeader {
			continue
		}
		if len(strings.Fields(line)) <= 5 && len(line) > 2 {
			return line
		}
	}
	return ""
}

// ExtractLocation looks for an explicit location label, then a "City, ST" pair.
func ExtractLocation(text string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ExtractContact extracts each contact field independently. The preamble is
// searched for a location before the whole text.
func ExtractContact(text string, secs types.Sections) types.ContactInfo {
	info := types.ContactInfo{Name: ExtractName(text)}

	if emails := ExtractEmails(text); len(emails) > 0 {
		info.Email = emails[0]
	}
	if phones := ExtractPhones(text); len(phones) > 0 {
		info.Phone = phones[0]
	}

	urls := ExtractURLs(text)
	if len(urls.LinkedIn) > 0 {
		info.LinkedIn = urls.LinkedIn[0]
	}
	if len(urls.GitHub) > 0 {
		info.GitHub = urls.GitHub[0]
	}
	if len(urls.Other) > 0 {
		info.Portfolio = urls.Other[0]
	}

	if preamble, ok := secs.Get(types.PreambleSection); ok {
		info.Location = ExtractLocation(preamble)
	}
	if info.Location == "" {
		info.Location = ExtractLocation(text)
	}

	return info
}
