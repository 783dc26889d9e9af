package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

var (
	beginEnv = regexp.MustCompile(`\\begin\{(\w+\*?)\}`)
	endEnv   = regexp.MustCompile(`\\end\{(\w+\*?)\}`)
)

// ValidateLatexSyntax checks brace parity, that environment begins and ends
// pair up as multisets, and that the document body markers are present.
// Escaped braces and comments are ignored.
func ValidateLatexSyntax(source string) types.SyntaxResult {
	errs := []string{}
	code := stripComments(source)

	open, closed := countBraces(code)
	if open != closed {
		errs = append(errs, fmt.Sprintf("Unbalanced braces: %d open, %d close", open, closed))
	}

	begins := envNames(beginEnv, code)
	ends := envNames(endEnv, code)
	if strings.Join(begins, ",") != strings.Join(ends, ",") {
		errs = append(errs, fmt.Sprintf("Mismatched environments: begins=%v, ends=%v", begins, ends))
	}

	if !strings.Contains(code, `\begin{document}`) {
		errs = append(errs, `Missing \begin{document}`)
	}
	if !strings.Contains(code, `\end{document}`) {
		errs = append(errs, `Missing \end{document}`)
	}

	return types.SyntaxResult{Valid: len(errs) == 0, Errors: errs}
}

// BalancedBraces reports whether the unescaped braces of a fragment nest
// properly. Comments are ignored.
func BalancedBraces(fragment string) bool {
	code := stripComments(fragment)
	depth := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func envNames(re *regexp.Regexp, code string) []string {
	names := []string{}
	for _, m := range re.FindAllStringSubmatch(code, -1) {
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}

func countBraces(code string) (open, closed int) {
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '{':
			open++
		case '}':
			closed++
		}
	}
	return open, closed
}

// stripComments drops everything after an unescaped % on each line.
func stripComments(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		for j := 0; j < len(line); j++ {
			if line[j] == '\\' {
				j++
				continue
			}
			if line[j] == '%' {
				lines[i] = line[:j]
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
