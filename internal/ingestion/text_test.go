package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "crlf and cr", input: "Line 1\r\nLine 2\rLine 3", expected: "Line 1\nLine 2\nLine 3"},
		{name: "collapse spaces and tabs", input: "Go  \t and   Python", expected: "Go and Python"},
		{name: "strip each line", input: "  indented  \n\ttabbed\t", expected: "indented\ntabbed"},
		{name: "collapse blank runs", input: "A\n\n\n\n\nB", expected: "A\n\nB"},
		{name: "whitespace-only lines", input: "A\n  \n \t \n\nB", expected: "A\n\nB"},
		{name: "trim document", input: "\n\n  Hello  \n\n", expected: "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "EXPERIENCE\r\n\r\n\r\n  Acme   Corp \n• Built   things\n\n\n\nSKILLS"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("one two\nthree"))
	assert.Equal(t, 2, WordCount("  spaced \t out  "))
}

func TestEstimatePages(t *testing.T) {
	tests := []struct {
		words int
		pages int
	}{
		{0, 1},
		{500, 1},
		{501, 2},
		{1000, 2},
		{1001, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pages, EstimatePages(tt.words), "words=%d", tt.words)
	}
}

func TestIsBulletLine(t *testing.T) {
	bullets := []string{"• Led team", "- Shipped", "· Dot", "* Star", "▪ Square", "1. First", "  - indented"}
	for _, line := range bullets {
		assert.True(t, IsBulletLine(line), line)
	}
	plain := []string{"Acme Corp", "2020 - 2022", ""}
	for _, line := range plain {
		assert.False(t, IsBulletLine(line), line)
	}
}

func TestIngestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\n\r\n\r\nSKILLS\r\nGo,   Python"), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSKILLS\nGo, Python", text)
	require.NotNil(t, meta)
	assert.Equal(t, "txt", meta.Format)
	assert.Equal(t, path, meta.Source)
	assert.Len(t, meta.Hash, 64)
}

func TestIngestFromFile_LatexUntouched(t *testing.T) {
	source := "\\documentclass{article}\n\\begin{document}\n  Hello   world\n\\end{document}\n"
	path := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, source, text)
	assert.Equal(t, "tex", meta.Format)
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.rtf")
	require.NoError(t, os.WriteFile(path, []byte("{\\rtf1}"), 0644))

	_, _, err := IngestFromFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
