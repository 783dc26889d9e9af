// Package ingestion turns raw résumé and job-description sources into normalized text.
package ingestion

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankRun        = regexp.MustCompile(`\n{3,}`)
)

// WordsPerPage is the page-estimate divisor.
const WordsPerPage = 500

// CleanText canonicalizes line endings and whitespace. The result has LF line
// endings, single spaces inside lines, no leading or trailing space on any line,
// and at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = horizontalSpace.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	result := strings.Join(lines, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimatePages returns 1 for up to 500 words, otherwise ceil(words/500).
func EstimatePages(words int) int {
	if words <= WordsPerPage {
		return 1
	}
	return int(math.Ceil(float64(words) / WordsPerPage))
}

// IsBulletLine reports whether a line starts with a list marker.
func IsBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"•", "-", "·", "*", "▪"} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return numberedBullet.MatchString(trimmed)
}

var numberedBullet = regexp.MustCompile(`^\d+\.`)

// IngestFromFile reads a résumé or job description from disk, extracts text
// according to the file extension, and normalizes it.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	raw, err := Extract(content, format)
	if err != nil {
		return "", nil, err
	}

	var cleanedText string
	if format == FormatLaTeX {
		// structural parsing needs the untouched source
		cleanedText = raw
	} else {
		cleanedText = CleanText(raw)
	}
	metadata := NewMetadata(cleanedText, "")
	metadata.Source = path
	metadata.Format = string(format)

	return cleanedText, metadata, nil
}
