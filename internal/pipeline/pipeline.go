// Package pipeline orchestrates a full scoring run and the optimization that
// builds on it.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/latex"
	"github.com/jonathan/ats-scorer/internal/matching"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/ranking"
	"github.com/jonathan/ats-scorer/internal/review"
	"github.com/jonathan/ats-scorer/internal/rewriting"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Progress steps reported through ProgressCallback.
const (
	StepParse     = "parse"
	StepMatch     = "match"
	StepSemantic  = "semantic"
	StepStructure = "structure"
	StepReview    = "review"
	StepSuggest   = "suggest"
	StepSave      = "save"
	StepOptimize  = "optimize"
)

// ProgressEvent represents a progress update during a run.
type ProgressEvent struct {
	Step       string `json:"step"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
}

// ProgressCallback is called when a step finishes.
type ProgressCallback func(event ProgressEvent)

// Analyzer runs the scoring pipeline. Every collaborator is optional: a nil
// Phrases uses the fallback keyword extractor, a nil Semantic scores 0, a nil
// Reviewer skips the review, a nil Optimizer returns unavailable results and
// a nil Store skips history.
type Analyzer struct {
	Phrases   parsing.PhraseScorer
	Semantic  *scoring.SemanticScorer
	Reviewer  *review.Analyzer
	Optimizer *rewriting.Optimizer
	Store     db.Store
	Logger    *zap.Logger

	OnProgress ProgressCallback

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() string
}

// Options selects the optional parts of a run.
type Options struct {
	Review bool   // Ask the generative service for a qualitative review
	Save   bool   // Persist the analysis to the history store
	Owner  string // Subject of the caller's token, recorded with saved analyses
}

func (a *Analyzer) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *Analyzer) emit(step, message, id string) {
	if a.OnProgress != nil {
		a.OnProgress(ProgressEvent{Step: step, Message: message, AnalysisID: id})
	}
}

// NewID returns an analysis id: the first 8 characters of a random UUID.
func NewID() string {
	return uuid.NewString()[:8]
}

// Analyze scores resumeText against jobText. Collaborator failures degrade
// the result instead of failing it; only an empty input or a cancelled
// context returns an error. A failed save is logged and the analysis is
// still returned.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string, opts Options) (*types.Analysis, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, fmt.Errorf("job description is empty")
	}
	logger := a.logger()
	start := time.Now()

	var (
		resume *types.Resume
		job    *types.JobDescription
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resume = parsing.ParseResume(resumeText)
		return nil
	})
	g.Go(func() error {
		job = parsing.ParseJobDescription(gCtx, jobText, a.Phrases, logger)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.emit(StepParse, fmt.Sprintf("Parsed resume (%d words) and %d keywords (%s)",
		resume.WordCount, len(job.Keywords), job.KeywordSource), "")

	// Keyword matching and embedding are independent.
	var (
		keywords *types.KeywordReport
		semantic types.SemanticResult
	)
	g, gCtx = errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := matching.ScoreKeywords(gCtx, job.Keywords, matching.NewDocument(resume.RawText, resume.Sections))
		if err != nil {
			return fmt.Errorf("keyword matching failed: %w", err)
		}
		keywords = report
		return nil
	})
	g.Go(func() error {
		semantic = a.Semantic.Score(gCtx, resume, job)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.emit(StepMatch, fmt.Sprintf("Keyword score %d (%d required missing)", keywords.Score, len(keywords.MissingRequired)), "")
	a.emit(StepSemantic, fmt.Sprintf("Semantic score %d (available: %t)", semantic.Score, semantic.Available), "")

	structure := scoring.ScoreStructure(resume)
	a.emit(StepStructure, fmt.Sprintf("Structure score %d (%d issues)", structure.TotalScore, len(structure.Details.FormattingIssues)), "")

	scores := scoring.Aggregate(keywords.Score, semantic.Score, structure.TotalScore)

	var rev *types.Review
	if opts.Review {
		rev = a.Reviewer.Analyze(ctx, resume.RawText, job.RawText, review.Scores{
			Keyword:    scores.Keyword,
			Semantic:   scores.Semantic,
			Structural: scores.Structural,
		})
		a.emit(StepReview, fmt.Sprintf("Review available: %t", rev != nil), "")
	}

	suggestions := ranking.Suggest(ranking.Input{
		Results:   keywords.Results,
		Structure: structure,
		Semantic:  semantic,
		Review:    rev,
	})
	a.emit(StepSuggest, fmt.Sprintf("%d suggestions", len(suggestions)), "")

	analysis := &types.Analysis{
		ID:          a.id(),
		CreatedAt:   a.clock().UTC(),
		Owner:       opts.Owner,
		Scores:      scores,
		Keywords:    *keywords,
		Semantic:    semantic,
		Structure:   structure,
		Suggestions: suggestions,
		Review:      rev,
		Resume:      resume,
		Job:         job,
	}

	if opts.Save && a.Store != nil {
		if err := a.Store.Save(ctx, analysis); err != nil {
			logger.Warn("failed to save analysis", zap.String("analysis_id", analysis.ID), zap.Error(err))
		} else {
			a.emit(StepSave, "Saved analysis "+analysis.ID, analysis.ID)
		}
	}

	logger.Info("analysis complete",
		zap.String("analysis_id", analysis.ID),
		zap.Int("overall", scores.Overall),
		zap.String("status", string(scores.Status)),
		zap.Duration("duration", time.Since(start)),
	)
	return analysis, nil
}

// Optimize scores the résumé, then asks the optimizer for edits. format is
// "latex", "text" or empty to detect it from the source. The analysis the
// edits were based on is returned with the result.
func (a *Analyzer) Optimize(ctx context.Context, resumeText, jobText, format string) (*types.OptimizationResult, *types.Analysis, error) {
	analysis, err := a.Analyze(ctx, resumeText, jobText, Options{})
	if err != nil {
		return nil, nil, err
	}
	oc := rewriting.NewContext(analysis)
	if format == "" {
		format = rewriting.FormatText
		if latex.IsLatex(resumeText) {
			format = rewriting.FormatLatex
		}
	}

	var result *types.OptimizationResult
	switch format {
	case rewriting.FormatLatex:
		result = a.Optimizer.OptimizeLatex(ctx, resumeText, jobText, oc)
	case rewriting.FormatText:
		result = a.Optimizer.OptimizePlain(ctx, resumeText, jobText, oc)
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
	a.emit(StepOptimize, fmt.Sprintf("Applied %d changes, rejected %d", len(result.Changes), len(result.Rejected)), analysis.ID)
	return result, analysis, nil
}

func (a *Analyzer) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *Analyzer) id() string {
	if a.newID != nil {
		return a.newID()
	}
	return NewID()
}
