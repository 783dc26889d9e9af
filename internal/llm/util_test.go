package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the review:\n{\"qualitative_fit\": \"strong\"}", `{"qualitative_fit": "strong"}`},
		{"trailing text", "{\"a\": 1}\n\nLet me know if you need more.", `{"a": 1}`},
		{"array", "Phrases:\n[\"go\", \"sql\"]", `["go", "sql"]`},
		{"braces in strings", `{"template": "Hello {name}!"}`, `{"template": "Hello {name}!"}`},
		{"escaped quotes", `Result: {"m": "said \"}\""}`, `{"m": "said \"}\""}`},
		{"no JSON", "sorry, I cannot help", "sorry, I cannot help"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"nested", "Output: {\"outer\": {\"inner\": [1, 2]}} done", `{"outer": {"inner": [1, 2]}}`, true},
		{"fenced", "```json\n{\"optimized_summary\": \"x\"}\n```", `{"optimized_summary": "x"}`, true},
		{"object inside array", `[{"id": 1}]`, `{"id": 1}`, true},
		{"truncated", `{"a": {"b": 1}`, "", false},
		{"empty", "", "", false},
		{"not json", "no braces here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	// "é" is two bytes; cutting inside it backs off to the rune start
	assert.Equal(t, "r", Truncate("résumé", 2))
	assert.Equal(t, "ré", Truncate("résumé", 3))
}
