package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/server/ratelimit"
	"github.com/jonathan/ats-scorer/internal/types"
)

const testResume = `Jane Doe
jane@example.com | 555-123-4567

SUMMARY
Backend engineer building data platforms.

SKILLS
Go, PostgreSQL

EXPERIENCE
Senior Engineer at Acme 2020 - Present
- Built Go services handling 2M requests a day
`

const testJob = `Backend Engineer

Requirements:
- Strong Go experience
- Kubernetes in production
`

const testLatex = `\documentclass{article}
\begin{document}
\section{Skills}
Go, PostgreSQL
\end{document}
`

type fakePhrases struct{}

func (fakePhrases) ExtractKeyphrases(context.Context, string, int) ([]parsing.Phrase, error) {
	return []parsing.Phrase{{Text: "Go", Weight: 0.6}, {Text: "Kubernetes", Weight: 0.6}}, nil
}

type testServer struct {
	*Server
	store   *db.MemoryStore
	handler http.Handler
}

func newTestServer(t *testing.T, mutate func(*Config)) *testServer {
	t.Helper()
	store := db.NewMemoryStore()
	cfg := Config{
		Analyzer:  &pipeline.Analyzer{Phrases: fakePhrases{}, Store: store},
		Store:     store,
		RateLimit: &ratelimit.Config{Enabled: false},
		Health:    func() map[string]string { return map[string]string{"embedding": "unavailable"} },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, store: store, handler: s.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNew_RequiresAnalyzer(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, "unavailable", got["embedding"])
	assert.Equal(t, "enabled", got["history"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/analyze", types.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
		Save:           true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decodeBody[types.Analysis](t, rec)
	assert.Len(t, got.ID, 8)
	assert.Equal(t, []string{"Kubernetes"}, got.Keywords.MissingRequired)
	assert.Nil(t, got.Resume, "parsed documents are omitted unless requested")
	assert.Nil(t, got.Job)

	saved, err := ts.store.Get(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Scores, saved.Scores)
	require.NotNil(t, saved.Job, "history keeps the parsed documents")
}

func TestAnalyze_IncludeParsed(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/analyze", types.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
		IncludeParsed:  true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[types.Analysis](t, rec)
	require.NotNil(t, got.Resume)
	assert.Equal(t, "jane@example.com", got.Resume.Contact.Email)
	require.NotNil(t, got.Job)

	list, err := ts.store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list, "not saved unless requested")
}

func TestAnalyze_BadRequests(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"empty body", "", http.StatusBadRequest, "request body is empty"},
		{"invalid json", "{", http.StatusBadRequest, "validation error: body"},
		{"unknown field", `{"resume_text": "x", "job_description": "long enough job description", "extra": 1}`, http.StatusBadRequest, "unknown field"},
		{"missing resume", types.AnalyzeRequest{JobDescription: testJob}, http.StatusBadRequest, `resumetext failed "required"`},
		{"short job", types.AnalyzeRequest{ResumeText: testResume, JobDescription: "Go"}, http.StatusBadRequest, `jobdescription failed "min"`},
		{"bad format", types.AnalyzeRequest{ResumeText: testResume, JobDescription: testJob, Format: "docx"}, http.StatusBadRequest, `format failed "oneof"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/analyze", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], tt.message)
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.MaxBodyBytes = 64 })

	rec := ts.do(t, http.MethodPost, "/api/v1/analyze", types.AnalyzeRequest{ResumeText: testResume, JobDescription: testJob})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyze_SaveWithoutHistory(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.Store = nil })

	rec := ts.do(t, http.MethodPost, "/api/v1/analyze", types.AnalyzeRequest{ResumeText: testResume, JobDescription: testJob, Save: true})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOptimize_Unavailable(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/optimize", types.OptimizeRequest{ResumeText: testResume, JobDescription: testJob})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[OptimizeResponse](t, rec)
	assert.False(t, got.Available)
	assert.Equal(t, testResume, got.Output)
	assert.Len(t, got.AnalysisID, 8)
	assert.Equal(t, got.Scores.Overall, got.OriginalScore)
}

func TestParseResume(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/parse/resume", types.ParseRequest{Text: testResume})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[ParseResumeResponse](t, rec)
	require.NotNil(t, got.Resume)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Resume.Skills)
	assert.Nil(t, got.Latex)
	assert.Positive(t, got.Structure.TotalScore)

	rec = ts.do(t, http.MethodPost, "/api/v1/parse/resume", types.ParseRequest{Text: testLatex})
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeBody[ParseResumeResponse](t, rec)
	require.NotNil(t, got.Latex)
	require.NotNil(t, got.Latex.Skills)
	assert.Equal(t, types.FormatLaTeX, got.Resume.Format)
}

func TestParseJD(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/parse/jd", types.ParseRequest{Text: testJob})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[types.JobDescription](t, rec)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, []string{"Go", "Kubernetes"}, got.RequiredSkills)
}

func TestValidateLatex(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/validate/latex", types.ValidateLatexRequest{Source: testLatex})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[types.SyntaxResult](t, rec).Valid)

	rec = ts.do(t, http.MethodPost, "/api/v1/validate/latex", types.ValidateLatexRequest{Source: `\begin{document}\textbf{x`})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[types.SyntaxResult](t, rec)
	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Errors)
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"aaaa1111", "bbbb2222", "cccc3333"} {
		require.NoError(t, ts.store.Save(ctx, &types.Analysis{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Scores:    types.ScoreBundle{Overall: 60 + i, Status: types.StatusMaybe},
		}))
	}

	rec := ts.do(t, http.MethodGet, "/api/v1/history?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[struct {
		Analyses []types.AnalysisSummary `json:"analyses"`
		Count    int                     `json:"count"`
	}](t, rec)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "cccc3333", list.Analyses[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/history?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/history/bbbb2222", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 61, decodeBody[types.Analysis](t, rec).Scores.Overall)

	rec = ts.do(t, http.MethodDelete, "/api/v1/history/bbbb2222", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/history/bbbb2222", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, http.MethodDelete, "/api/v1/history/bbbb2222", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "analysis not found", decodeBody[map[string]string](t, rec)["error"])
}

func TestHistory_Disabled(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.Store = nil })

	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodGet, "/api/v1/history", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodGet, "/api/v1/history/x", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodDelete, "/api/v1/history/x", nil).Code)

	got := decodeBody[map[string]string](t, ts.do(t, http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, "disabled", got["history"])
}

func TestAuth(t *testing.T) {
	jwtCfg := testJWTConfig()
	ts := newTestServer(t, func(c *Config) { c.JWT = jwtCfg })

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/v1/health", nil).Code, "health is public")
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/v1/history", nil).Code)

	token, _, err := NewJWTService(jwtCfg).GenerateToken("ci-bot")
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/api/v1/analyze",
		types.AnalyzeRequest{ResumeText: testResume, JobDescription: testJob, Save: true},
		"Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	saved, err := ts.store.Get(context.Background(), decodeBody[types.Analysis](t, rec).ID)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", saved.Owner)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.CORSOrigins = []string{"https://app.example.com"} })

	rec := ts.do(t, http.MethodOptions, "/api/v1/analyze", nil, "Origin", "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	rec = ts.do(t, http.MethodGet, "/api/v1/health", nil, "Origin", "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	open := newTestServer(t, nil)
	rec = open.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{{Path: "/api/v1/validate/latex", Method: "POST", Limit: 2, Window: time.Hour}},
		}
	})

	body := types.ValidateLatexRequest{Source: testLatex}
	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodPost, "/api/v1/validate/latex", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/validate/latex", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody[map[string]any](t, rec)["error"])
}

func TestRequestID_Propagated(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(t, http.MethodGet, "/api/v1/health", nil, "X-Request-ID", "req-42")
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(t, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
