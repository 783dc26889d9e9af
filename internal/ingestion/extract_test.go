package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"resume.pdf", FormatPDF, false},
		{"Resume.DOCX", FormatDOCX, false},
		{"resume.tex", FormatLaTeX, false},
		{"resume.txt", FormatText, false},
		{"notes.md", FormatText, false},
		{"resume.odt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("rtf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_Passthrough(t *testing.T) {
	text, err := Extract([]byte("plain  text"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "plain  text", text)
}

func TestExtract_DOCX(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>R&amp;D</w:t><w:tab/><w:t>Engineer</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := Extract(buildDOCX(t, xml), FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nR&D\tEngineer\n", text)
}

func TestExtract_DOCXWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract(buf.Bytes(), FormatDOCX)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, FormatDOCX, extractionErr.Format)
}

func TestExtract_DOCXEmptyText(t *testing.T) {
	_, err := Extract(buildDOCX(t, `<w:document><w:body><w:p></w:p></w:body></w:document>`), FormatDOCX)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "no text found")
}

func TestExtract_InvalidPDF(t *testing.T) {
	_, err := Extract([]byte("not a pdf"), FormatPDF)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, FormatPDF, extractionErr.Format)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract([]byte("x"), Format("rtf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
