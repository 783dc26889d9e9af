// Package ranking turns scoring gaps into a prioritized list of suggestions.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Similarity cut-offs, in percent, below which semantic suggestions fire.
const (
	LowSkillsSimilarity     = 50.0
	LowExperienceSimilarity = 40.0
)

const (
	maxListedKeywords = 5
	maxReviewItems    = 3
)

// Input gathers the signals suggestions are derived from. Review is optional.
type Input struct {
	Results   []types.MatchResult
	Structure types.StructureResult
	Semantic  types.SemanticResult
	Review    *types.Review
}

// Suggest evaluates every rule in a fixed order and sorts the triggered
// suggestions by estimated impact, highest first. Equal impacts keep rule order.
func Suggest(in Input) []types.Suggestion {
	out := []types.Suggestion{}
	add := func(p types.Priority, category, title, description string, impact int) {
		out = append(out, types.Suggestion{
			Priority:        p,
			Category:        category,
			Title:           title,
			Description:     description,
			EstimatedImpact: impact,
		})
	}

	required, preferred := types.Missing(in.Results)
	if len(required) > 0 {
		add(types.PriorityHigh, "keywords", "Add Missing Required Keywords",
			fmt.Sprintf("Your resume is missing these required keywords: %s. Add them naturally to your skills or experience sections.", listFirst(required)),
			min(15, 3*len(required)))
	}
	if len(preferred) > 0 {
		add(types.PriorityMedium, "keywords", "Add Preferred Keywords",
			fmt.Sprintf("Consider adding these preferred keywords: %s", listFirst(preferred)),
			min(8, 2*len(preferred)))
	}

	d := in.Structure.Details
	if !d.HasSummary {
		add(types.PriorityHigh, "structure", "Add a Professional Summary",
			"Add a 2-3 sentence summary at the top of your resume tailored to this role.", 5)
	}
	if !d.HasLinkedIn {
		add(types.PriorityLow, "structure", "Add LinkedIn URL",
			"Include your LinkedIn profile URL in the contact section.", 2)
	}
	if !d.HasGitHub {
		add(types.PriorityLow, "structure", "Add GitHub/Portfolio Link",
			"Include a link to your GitHub or portfolio to showcase your work.", 2)
	}
	switch {
	case d.WordCount < 300:
		add(types.PriorityHigh, "structure", "Expand Resume Content",
			fmt.Sprintf("Your resume is only %d words. Aim for 400-700 words with detailed bullet points.", d.WordCount), 8)
	case d.WordCount > 1000:
		add(types.PriorityMedium, "structure", "Condense Resume",
			fmt.Sprintf("Your resume is %d words. Try to keep it under 800 words for a single-page format.", d.WordCount), 4)
	}

	if in.Semantic.Available {
		if in.Semantic.SectionSimilarities["skills"] < LowSkillsSimilarity {
			add(types.PriorityHigh, "semantic", "Align Skills with Job Requirements",
				"Your skills section has low similarity to the job requirements. Reorder and rephrase skills to match the JD language.", 10)
		}
		if in.Semantic.SectionSimilarities["experience"] < LowExperienceSimilarity {
			add(types.PriorityMedium, "semantic", "Tailor Experience Descriptions",
				"Your experience descriptions don't closely match the job responsibilities. Rewrite bullets to use similar language as the JD.", 8)
		}
	}

	if in.Review != nil {
		for _, gap := range firstN(in.Review.Gaps, maxReviewItems) {
			add(types.PriorityMedium, "gaps", "Address Experience Gap", gap, 5)
		}
		hints := in.Review.MissingKeywordsToAdd
		if len(hints) > maxReviewItems {
			hints = hints[:maxReviewItems]
		}
		for _, hint := range hints {
			where := hint.Where
			if where == "" {
				where = "skills"
			}
			add(types.PriorityHigh, "keywords", fmt.Sprintf("Add '%s'", hint.Keyword),
				fmt.Sprintf("Add to %s section: %s", where, hint.How), 3)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedImpact > out[j].EstimatedImpact
	})
	return out
}

func listFirst(keywords []string) string {
	return strings.Join(firstN(keywords, maxListedKeywords), ", ")
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
