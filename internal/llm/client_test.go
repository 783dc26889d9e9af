package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.Candidate {
	return &genai.Candidate{Content: &genai.Content{Parts: parts}, FinishReason: genai.FinishReasonStop}
}

func TestResponseText(t *testing.T) {
	text, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{candidate(genai.Text(`{"a":`), genai.Text(`1}`))},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestResponseText_Errors(t *testing.T) {
	safety := candidate(genai.Text("x"))
	safety.FinishReason = genai.FinishReasonSafety

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr error
	}{
		{"nil", nil, ErrEmptyResponse},
		{"no candidates", &genai.GenerateContentResponse{}, ErrEmptyResponse},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ErrEmptyResponse},
		{"blank text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate(genai.Text("  "))}}, ErrEmptyResponse},
		{"non-text parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate(genai.Blob{MIMEType: "image/png"})}}, ErrEmptyResponse},
		{"prompt blocked", &genai.GenerateContentResponse{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}, ErrBlocked},
		{"answer blocked", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{safety}}, ErrBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responseText(tt.resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.ErrorContains(t, err, `unsupported provider "openai"`)

	_, err = NewClient(context.Background(), nil, "")
	assert.ErrorContains(t, err, "API key is required")
}
