package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/sections"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Similarity weights for the semantic score.
const (
	SkillsSimilarityWeight     = 0.40
	ExperienceSimilarityWeight = 0.35
	EducationSimilarityWeight  = 0.15
	OverallSimilarityWeight    = 0.10
)

// SemanticScorer compares résumé sections with job-description aggregates
// through an Embedder. A nil Embedder or any embedding failure yields the
// degraded result.
type SemanticScorer struct {
	Embedder embedding.Embedder
	Logger   *zap.Logger
}

var similarityPairs = []struct {
	name   string
	weight float64
}{
	{"skills", SkillsSimilarityWeight},
	{"experience", ExperienceSimilarityWeight},
	{"education", EducationSimilarityWeight},
	{"overall", OverallSimilarityWeight},
}

// Score embeds four résumé texts and four job-description texts and combines
// the pairwise cosine similarities.
func (s *SemanticScorer) Score(ctx context.Context, r *types.Resume, jd *types.JobDescription) types.SemanticResult {
	degraded := types.SemanticResult{SectionSimilarities: map[string]float64{}}
	if s == nil || s.Embedder == nil {
		return degraded
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	texts := append(resumeTexts(r), jobTexts(jd)...)
	vectors, err := s.Embedder.Embed(ctx, texts)
	if err != nil {
		logger.Warn("semantic scoring unavailable, using degraded score", zap.Error(err))
		return degraded
	}
	if len(vectors) != len(texts) {
		logger.Warn("semantic scoring unavailable, using degraded score",
			zap.Int("vectors", len(vectors)), zap.Int("texts", len(texts)))
		return degraded
	}

	half := len(similarityPairs)
	sims := make(map[string]float64, half)
	weighted := 0.0
	for i, pair := range similarityPairs {
		sim := embedding.Cosine(vectors[i], vectors[i+half])
		sims[pair.name] = math.Round(sim*1000) / 10
		weighted += sim * pair.weight
	}

	return types.SemanticResult{
		Score:               clamp(int(math.Round(weighted * 100))),
		Available:           true,
		SectionSimilarities: sims,
	}
}

func resumeTexts(r *types.Resume) []string {
	orDefault := func(fallback string, aliases ...string) string {
		content, _ := r.Sections.First(aliases...)
		if strings.TrimSpace(content) == "" {
			return fallback
		}
		return content
	}
	return []string{
		orDefault("no skills listed", "skills", "technical skills"),
		orDefault("no experience listed", sections.ExperienceAliases...),
		orDefault("no education listed", sections.EducationAliases...),
		r.RawText,
	}
}

func jobTexts(jd *types.JobDescription) []string {
	orFull := func(items []string) string {
		if len(items) == 0 {
			return jd.RawText
		}
		return strings.Join(items, " ")
	}
	return []string{
		orFull(jd.RequiredSkills),
		orFull(jd.Responsibilities),
		orFull(jd.Qualifications),
		jd.RawText,
	}
}
