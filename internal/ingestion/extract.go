package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format identifies a source document encoding.
type Format string

// Supported source formats.
const (
	FormatText  Format = "txt"
	FormatLaTeX Format = "tex"
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
)

// DetectFormat maps a file name to its Format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", "":
		return FormatText, nil
	case ".tex":
		return FormatLaTeX, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ParseFormat accepts a format name such as "pdf" or ".docx".
func ParseFormat(name string) (Format, error) {
	return DetectFormat("document." + strings.TrimPrefix(strings.ToLower(name), "."))
}

// Extract returns the plain text of data. Text and LaTeX sources pass through
// unchanged; PDF and DOCX are decoded.
func Extract(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatText, FormatLaTeX:
		return string(data), nil
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Format: format, Message: "no text found"}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to open document", Cause: err}
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to copy text", Cause: err}
	}
	return buf.String(), nil
}

var xmlTag = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "not a zip container", Cause: err}
	}

	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &ExtractionError{Format: FormatDOCX, Message: "failed to open document.xml", Cause: err}
		}
		body, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", &ExtractionError{Format: FormatDOCX, Message: "failed to read document.xml", Cause: err}
		}
		break
	}
	if len(body) == 0 {
		return "", &ExtractionError{Format: FormatDOCX, Message: "no document.xml found"}
	}

	doc := string(body)
	doc = strings.ReplaceAll(doc, "</w:p>", "\n")
	doc = strings.ReplaceAll(doc, "<w:tab/>", "\t")
	doc = xmlTag.ReplaceAllString(doc, "")
	doc = strings.ReplaceAll(html.UnescapeString(doc), "\u00a0", " ")
	return doc, nil
}
