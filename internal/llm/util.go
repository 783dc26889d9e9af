package llm

import (
	"strings"
	"unicode/utf8"
)

// CleanJSONBlock removes markdown code fences and any conversational text
// around the first JSON object or array in a model response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// skip a language tag such as "json"
		if idx := strings.Index(text, "\n"); idx >= 0 {
			tag := text[:idx]
			if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if block, ok := balanced(text[start:]); ok {
		return block
	}
	return text
}

// ExtractJSONObject returns the first complete JSON object in text.
func ExtractJSONObject(text string) (string, bool) {
	text = CleanJSONBlock(text)
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	return balanced(text[start:])
}

// balanced returns the prefix of s, which starts with an opening bracket, up
// to its matching close. Brackets inside string literals are ignored.
func balanced(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
