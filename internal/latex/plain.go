// Package latex parses macro-based LaTeX résumé sources into a
// line-addressable structural map and reassembles edited sources from it.
package latex

import (
	"regexp"
	"strings"
)

// IsLatex reports whether text looks like a LaTeX document.
func IsLatex(text string) bool {
	return strings.Contains(text, `\documentclass`) || strings.Contains(text, `\begin{document}`)
}

type substitution struct {
	pattern *regexp.Regexp
	repl    string
}

// plainRules run in order. Pipes survive so composite headings stay split
// into fields, and items keep a bullet marker for the entry extractors.
var plainRules = []substitution{
	{regexp.MustCompile(`(?m)(^|[^\\])%.*$`), "$1"},
	{regexp.MustCompile(`\\href\{[^}]*\}\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\myuline\s*\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`\\(?:textbf|textit|texttt|emph|underline)\{([^}]*)\}`), "$1"},
	{regexp.MustCompile(`(?s)\\resumeItem\{(.*?)\}`), "• $1"},
	{regexp.MustCompile(`\\resumeSubheading\s*\{([^}]*)\}\s*\{([^}]*)\}\s*\{([^}]*)\}\s*\{([^}]*)\}`), "$1 | $3 | $2 | $4"},
	{regexp.MustCompile(`\\resumeProjectHeading\s*\{([^}]*)\}\s*\{([^}]*)\}`), "$1 | $2"},
	{regexp.MustCompile(`\\section\*?\{([^}]*)\}`), "\n$1\n"},
	{regexp.MustCompile(`\\[a-zA-Z]+\*?\{[^{}]*\}`), ""},
	{regexp.MustCompile(`\\[a-zA-Z]+\*?`), ""},
	{regexp.MustCompile(`\[[^\]\n]*=[^\]\n]*\]`), ""},
	{regexp.MustCompile(`[{}$\\]`), ""},
	{regexp.MustCompile(`[ \t]*\|[ \t]*(?:\|[ \t]*)+`), " | "},
	{regexp.MustCompile(`\n\s*\n`), "\n"},
	{regexp.MustCompile(`[ \t]{2,}`), " "},
}

// ToPlain renders LaTeX markup as plain text: comments are dropped, common
// formatting commands collapse to their text and residual markup is removed.
func ToPlain(source string) string {
	text := source
	for _, rule := range plainRules {
		text = rule.pattern.ReplaceAllString(text, rule.repl)
	}
	return strings.TrimSpace(text)
}

// Body returns the text between \begin{document} and \end{document}. Source
// without the markers is returned unchanged.
func Body(source string) string {
	if i := strings.Index(source, `\begin{document}`); i >= 0 {
		source = source[i+len(`\begin{document}`):]
	}
	if i := strings.LastIndex(source, `\end{document}`); i >= 0 {
		source = source[:i]
	}
	return source
}

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
