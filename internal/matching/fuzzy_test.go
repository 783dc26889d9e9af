package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1},
		{"", "", 1},
		{"abc", "", 0},
		{"kubernetes", "kubernetis", 0.9},
		{"résumé", "resume", 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "reordered", a: "backend scalable", b: "scalable backend", want: 1},
		{name: "subset", a: "fuzzy was a bear", b: "fuzzy wuzzy was a bear", want: 1},
		{name: "partial overlap", a: "new york mets", b: "new york yankees", want: 16.0 / 21.0},
		{name: "empty side", a: "", b: "anything", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestVariations(t *testing.T) {
	got := Variations("PostgreSQL")
	assert.Equal(t, "postgresql", got[0])
	assert.Contains(t, got, "postgres")

	got = Variations("Node.js")
	assert.Equal(t, "node.js", got[0])
	assert.Contains(t, got, "nodejs")
	assert.Contains(t, got, "node")

	got = Variations("event-driven")
	assert.Equal(t, []string{"event-driven", "event driven", "eventdriven"}, got)

	assert.Nil(t, Variations("  "))
	assert.Equal(t, Variations("CI/CD"), Variations("ci/cd"))
}
