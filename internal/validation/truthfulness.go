package validation

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Checker holds the technology terms a résumé may truthfully mention.
type Checker struct {
	original []string
	allowed  map[string]bool
}

// NewChecker extracts the lexicon terms of the original résumé text and
// extends them with their implication closure.
func NewChecker(original string) *Checker {
	return NewCheckerFromSkills(ExtractTechTerms(original))
}

// NewCheckerFromSkills builds a checker from an already extracted skill list.
func NewCheckerFromSkills(skills []string) *Checker {
	allowed := make(map[string]bool)
	for _, s := range skills {
		allowed[strings.ToLower(s)] = true
	}
	for _, s := range ImpliedSkills(skills) {
		allowed[s] = true
	}
	return &Checker{original: skills, allowed: allowed}
}

// OriginalSkills returns the skills the checker was built from.
func (c *Checker) OriginalSkills() []string {
	return c.original
}

// Check reports lexicon terms in replacement outside the allowed set.
func (c *Checker) Check(replacement string) types.TruthfulnessResult {
	fabricated := []string{}
	for _, term := range ExtractTechTerms(replacement) {
		if !c.allowed[term] {
			fabricated = append(fabricated, term)
		}
	}
	return types.TruthfulnessResult{Valid: len(fabricated) == 0, Fabricated: fabricated}
}

// ValidateTruthfulness checks replacement against the skills of original.
func ValidateTruthfulness(original, replacement string) types.TruthfulnessResult {
	return NewChecker(original).Check(replacement)
}
