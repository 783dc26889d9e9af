// Package keyphrases ranks job-description phrases with the generative
// service.
package keyphrases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/prompts"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/validation"
)

// MaxInputChars bounds the job-description text sent to the service.
const MaxInputChars = 6000

// Scorer implements parsing.PhraseScorer.
type Scorer struct {
	Client llm.Client
	Logger *zap.Logger
}

var _ parsing.PhraseScorer = (*Scorer)(nil)

// ExtractKeyphrases returns up to maxN distinct phrases in the service's rank
// order. Any failure is returned so the caller can fall back.
func (s *Scorer) ExtractKeyphrases(ctx context.Context, text string, maxN int) ([]parsing.Phrase, error) {
	if s == nil || s.Client == nil {
		return nil, fmt.Errorf("keyphrase scorer not configured")
	}
	if maxN <= 0 {
		maxN = parsing.MaxKeywords
	}

	prompt, err := prompts.Render("keyphrases.json", "extract-keyphrases", map[string]string{
		"JobDescription": validation.PrepareUntrusted(llm.Truncate(text, MaxInputChars), "job description", s.Logger),
		"MaxPhrases":     strconv.Itoa(maxN),
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.Client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("keyphrase request failed: %w", err)
	}
	return Parse(raw, maxN)
}

// Parse decodes a keyphrase response, drops malformed entries and duplicate
// phrases, and keeps at most maxN.
func Parse(raw string, maxN int) ([]parsing.Phrase, error) {
	object, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, &schemas.MalformedError{Cause: fmt.Errorf("no JSON object in keyphrase response")}
	}
	cleaned, _, err := schemas.Sanitize(schemas.KeyphraseSchema, object)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Keyphrases []parsing.Phrase `json:"keyphrases"`
	}
	if err := json.Unmarshal(cleaned, &resp); err != nil {
		return nil, &schemas.MalformedError{Cause: err}
	}

	seen := make(map[string]bool, len(resp.Keyphrases))
	out := make([]parsing.Phrase, 0, len(resp.Keyphrases))
	for _, p := range resp.Keyphrases {
		p.Text = strings.TrimSpace(p.Text)
		key := strings.ToLower(p.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
		if len(out) == maxN {
			break
		}
	}
	return out, nil
}
