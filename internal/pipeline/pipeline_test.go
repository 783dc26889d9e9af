package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/review"
	"github.com/jonathan/ats-scorer/internal/rewriting"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

const resumeText = `Jane Doe
jane@example.com | 555-123-4567

SUMMARY
Backend engineer building data platforms.

SKILLS
Go, PostgreSQL

EXPERIENCE
Senior Engineer at Acme 2020 - Present
- Built Go services handling 2M requests a day

EDUCATION
B.S. Computer Science 2016
`

const jobText = `Backend Engineer

Requirements:
- Strong Go experience
- Kubernetes in production
`

type fakePhrases struct {
	phrases []parsing.Phrase
	err     error
}

func (f *fakePhrases) ExtractKeyphrases(context.Context, string, int) ([]parsing.Phrase, error) {
	return f.phrases, f.err
}

type sameEmbedder struct{}

func (sameEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type failingStore struct{ db.Store }

func (failingStore) Save(context.Context, *types.Analysis) error { return errors.New("disk full") }

type fakeClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

func newTestAnalyzer(store db.Store) *Analyzer {
	return &Analyzer{
		Phrases: &fakePhrases{phrases: []parsing.Phrase{{Text: "Go", Weight: 0.6}, {Text: "Kubernetes", Weight: 0.6}}},
		Store:   store,
		now:     func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) },
		newID:   func() string { return "abcd1234" },
	}
}

func TestAnalyze(t *testing.T) {
	store := db.NewMemoryStore()
	a := newTestAnalyzer(store)

	var steps []string
	a.OnProgress = func(e ProgressEvent) { steps = append(steps, e.Step) }

	got, err := a.Analyze(context.Background(), resumeText, jobText, Options{Save: true, Owner: "jane"})
	require.NoError(t, err)

	assert.Equal(t, "abcd1234", got.ID)
	assert.Equal(t, "jane", got.Owner)
	assert.Equal(t, parsing.SourcePhraseScorer, got.Job.KeywordSource)
	assert.Equal(t, []string{"Kubernetes"}, got.Keywords.MissingRequired)
	assert.Equal(t, 50, got.Keywords.Score)

	assert.False(t, got.Semantic.Available, "no embedder configured")
	assert.Equal(t, 0, got.Scores.Semantic)
	assert.Nil(t, got.Review)
	assert.Equal(t, scoring.OverallScore(got.Scores.Keyword, 0, got.Scores.Structural), got.Scores.Overall)
	assert.Positive(t, got.Structure.TotalScore)
	assert.Equal(t, got.Structure.TotalScore, got.Scores.Structural)
	assert.Equal(t, scoring.ScoreStructure(got.Resume).TotalScore, got.Scores.Structural)
	var titles []string
	for _, s := range got.Suggestions {
		titles = append(titles, s.Title)
	}
	assert.Contains(t, titles, "Add Missing Required Keywords")

	assert.Equal(t, []string{StepParse, StepMatch, StepSemantic, StepStructure, StepSuggest, StepSave}, steps)

	saved, err := store.Get(context.Background(), "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, got.Scores, saved.Scores)
	assert.Equal(t, "Backend Engineer", saved.Summary().JobTitle)
}

func TestAnalyze_SemanticAvailable(t *testing.T) {
	a := newTestAnalyzer(nil)
	a.Semantic = &scoring.SemanticScorer{Embedder: sameEmbedder{}}

	got, err := a.Analyze(context.Background(), resumeText, jobText, Options{Save: true})
	require.NoError(t, err)
	assert.True(t, got.Semantic.Available)
	assert.Equal(t, 100, got.Scores.Semantic)
}

func TestAnalyze_FallbackKeywords(t *testing.T) {
	a := newTestAnalyzer(nil)
	a.Phrases = &fakePhrases{err: errors.New("quota exceeded")}

	got, err := a.Analyze(context.Background(), resumeText, jobText, Options{})
	require.NoError(t, err)
	assert.Equal(t, parsing.SourceFallback, got.Job.KeywordSource)
}

func TestAnalyze_Review(t *testing.T) {
	client := &fakeClient{reply: `{"qualitative_fit": "good", "fit_explanation": "solid Go background",
		"strengths": ["Go"], "gaps": ["No Kubernetes experience"], "interview_readiness": 7}`}
	a := newTestAnalyzer(nil)
	a.Reviewer = &review.Analyzer{Client: client}

	got, err := a.Analyze(context.Background(), resumeText, jobText, Options{})
	require.NoError(t, err)
	assert.Nil(t, got.Review, "review only runs when requested")
	assert.Zero(t, client.calls)

	got, err = a.Analyze(context.Background(), resumeText, jobText, Options{Review: true})
	require.NoError(t, err)
	require.NotNil(t, got.Review)
	assert.Equal(t, 7, got.Review.InterviewReadiness)

	var descriptions []string
	for _, s := range got.Suggestions {
		descriptions = append(descriptions, s.Description)
	}
	assert.Contains(t, descriptions, "No Kubernetes experience")
}

func TestAnalyze_SaveFailureKeepsResult(t *testing.T) {
	a := newTestAnalyzer(failingStore{})

	got, err := a.Analyze(context.Background(), resumeText, jobText, Options{Save: true})
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", got.ID)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := newTestAnalyzer(nil)

	_, err := a.Analyze(context.Background(), "  ", jobText, Options{})
	assert.ErrorContains(t, err, "resume text is empty")

	_, err = a.Analyze(context.Background(), resumeText, "\n", Options{})
	assert.ErrorContains(t, err, "job description is empty")
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer(nil).Analyze(ctx, resumeText, jobText, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimize_Unavailable(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, analysis, err := a.Optimize(context.Background(), resumeText, jobText, "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, rewriting.FormatText, result.Format)
	assert.Equal(t, resumeText, result.Output)
	assert.Equal(t, analysis.Scores.Overall, result.OriginalScore)
	assert.Equal(t, analysis.Scores.Overall, result.EstimatedScore)
}

func TestOptimize_PlainText(t *testing.T) {
	client := &fakeClient{reply: `{"optimized_summary": "Backend engineer building Go data platforms.",
		"bullet_changes": [], "keywords_successfully_added": [], "keywords_impossible": []}`}
	a := newTestAnalyzer(nil)
	a.Optimizer = &rewriting.Optimizer{Client: client}

	result, _, err := a.Optimize(context.Background(), resumeText, jobText, rewriting.FormatText)
	require.NoError(t, err)
	assert.True(t, result.Available)
	require.Len(t, result.Changes, 1)
	assert.Contains(t, result.Output, "Backend engineer building Go data platforms.")
	assert.NotContains(t, result.Output, "Backend engineer building data platforms.")
}

func TestOptimize_DetectsLatex(t *testing.T) {
	source := "\\documentclass{article}\n\\begin{document}\n\\section{Summary}\nGo engineer.\n\\end{document}\n"
	a := newTestAnalyzer(nil)

	result, _, err := a.Optimize(context.Background(), source, jobText, "")
	require.NoError(t, err)
	assert.Equal(t, rewriting.FormatLatex, result.Format)
	assert.Equal(t, source, result.Output)
}

func TestOptimize_UnsupportedFormat(t *testing.T) {
	_, _, err := newTestAnalyzer(nil).Optimize(context.Background(), resumeText, jobText, "docx")
	assert.ErrorContains(t, err, `unsupported format "docx"`)
}

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, NewID())
}
