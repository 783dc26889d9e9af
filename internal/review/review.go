// Package review asks the generative service for qualitative commentary on
// how a résumé fits a job description.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/llm"
	applog "github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/prompts"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/jonathan/ats-scorer/internal/validation"
)

// Prompt truncation limits, in bytes.
const (
	MaxResumeChars = 4000
	MaxJobChars    = 3000
)

// maxLoggedResponse caps how much of an unusable answer is logged.
const maxLoggedResponse = 200

var errNoObject = errors.New("no JSON object in response")

// DefaultInterviewReadiness applies when the response omits a usable value.
const DefaultInterviewReadiness = 5

// Analyzer produces a Review. A nil Client disables it.
type Analyzer struct {
	Client llm.Client
	Logger *zap.Logger
}

// Scores are the quantitative sub-scores shown to the model.
type Scores struct {
	Keyword    int
	Semantic   int
	Structural int
}

// Analyze returns nil when the service is unavailable or its answer cannot
// be used.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string, scores Scores) *types.Review {
	if a == nil || a.Client == nil {
		return nil
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	prompt, err := prompts.Render("review.json", "analyze-fit", map[string]string{
		"Resume":         validation.PrepareUntrusted(llm.Truncate(resumeText, MaxResumeChars), "resume", logger),
		"JobDescription": validation.PrepareUntrusted(llm.Truncate(jobText, MaxJobChars), "job description", logger),
		"KeywordScore":   strconv.Itoa(scores.Keyword),
		"SemanticScore":  strconv.Itoa(scores.Semantic),
		"StructureScore": strconv.Itoa(scores.Structural),
	})
	if err != nil {
		logger.Error("review prompt unavailable", zap.Error(err))
		return nil
	}

	raw, err := a.Client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		logger.Warn("review unavailable", zap.Error(err))
		return nil
	}

	review, err := Parse(raw)
	if err != nil {
		logger.Warn("review response unusable",
			zap.Error(err), zap.String("response", applog.TruncateForLog(raw, maxLoggedResponse)))
		return nil
	}
	return review
}

// Parse decodes a review response. Fields that fail the schema take their
// defaults; a response that is not a JSON object is an error.
func Parse(raw string) (*types.Review, error) {
	object, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, &schemas.MalformedError{Cause: errNoObject}
	}
	cleaned, _, err := schemas.Sanitize(schemas.ReviewSchema, object)
	if err != nil {
		return nil, err
	}

	var resp struct {
		types.Review
		InterviewReadiness *int `json:"interview_readiness"`
	}
	if err := json.Unmarshal(cleaned, &resp); err != nil {
		return nil, &schemas.MalformedError{Cause: err}
	}

	r := resp.Review
	r.InterviewReadiness = DefaultInterviewReadiness
	if resp.InterviewReadiness != nil {
		r.InterviewReadiness = *resp.InterviewReadiness
	}
	if r.QualitativeFit == "" {
		r.QualitativeFit = "partial_match"
	}
	r.Strengths = nonNil(r.Strengths)
	r.Gaps = nonNil(r.Gaps)
	r.InterviewTopics = nonNil(r.InterviewTopics)
	if r.BulletRewrites == nil {
		r.BulletRewrites = []types.BulletRewrite{}
	}
	if r.MissingKeywordsToAdd == nil {
		r.MissingKeywordsToAdd = []types.KeywordHint{}
	}
	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
