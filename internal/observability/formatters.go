// Package observability renders analysis and optimization results as
// boxed, human-readable reports for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// bar draws a 20-cell gauge for a 0..100 score.
func bar(score int) string {
	filled := max(0, min(score, 100)) / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// writeList writes up to limit items, then a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintAnalysis outputs the full report for one analysis.
func (p *Printer) PrintAnalysis(a *types.Analysis) {
	if a == nil {
		return
	}
	p.PrintScores(a)
	p.PrintKeywords(&a.Keywords)
	p.PrintStructure(&a.Structure)
	if a.Semantic.Available && len(a.Semantic.SectionSimilarities) > 0 {
		p.PrintSemantic(&a.Semantic)
	}
	p.PrintSuggestions(a.Suggestions)
	p.PrintReview(a.Review)
}

// PrintScores outputs the overall verdict and the three sub-scores.
func (p *Printer) PrintScores(a *types.Analysis) {
	if a == nil {
		return
	}
	s := a.Scores

	var sb strings.Builder
	if a.ID != "" {
		fmt.Fprintf(&sb, "Analysis:   %s\n", a.ID)
	}
	fmt.Fprintf(&sb, "Overall:    %3d  %s\n", s.Overall, bar(s.Overall))
	fmt.Fprintf(&sb, "Status:     %s\n", s.Status)
	fmt.Fprintf(&sb, "Rank:       %s\n", s.Rank)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Keywords:   %3d  %s\n", s.Keyword, bar(s.Keyword))
	if a.Semantic.Available {
		fmt.Fprintf(&sb, "Semantic:   %3d  %s\n", s.Semantic, bar(s.Semantic))
	} else {
		sb.WriteString("Semantic:   n/a  (embedding service unavailable)\n")
	}
	fmt.Fprintf(&sb, "Structure:  %3d  %s", s.Structural, bar(s.Structural))

	p.printBox("ATS SCORE", sb.String())
}

// PrintKeywords outputs matched and missing keywords.
func (p *Printer) PrintKeywords(report *types.KeywordReport) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	var sb strings.Builder
	found := 0
	for _, r := range report.Results {
		if r.Found {
			found++
		}
	}
	fmt.Fprintf(&sb, "Matched %d of %d keywords\n\n", found, len(report.Results))

	shown := 0
	for _, r := range report.Results {
		if !r.Found || shown == maxItemsToShow {
			continue
		}
		fmt.Fprintf(&sb, "  ✓ %s (%s, %.0f%%)\n", r.Keyword, r.MatchType, r.MatchScore*100)
		shown++
	}
	if found > shown {
		fmt.Fprintf(&sb, "  ... and %d more\n", found-shown)
	}
	if found > 0 {
		sb.WriteString("\n")
	}

	writeList(&sb, "Missing required", report.MissingRequired, maxItemsToShow)
	writeList(&sb, "Missing preferred", report.MissingPreferred, 3)

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStructure outputs the structural rubric breakdown.
func (p *Printer) PrintStructure(s *types.StructureResult) {
	if s == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contact:     %2d / 25\n", s.ContactScore)
	fmt.Fprintf(&sb, "Sections:    %2d / 35\n", s.SectionsScore)
	fmt.Fprintf(&sb, "Length:      %2d / 20\n", s.LengthScore)
	fmt.Fprintf(&sb, "Formatting:  %2d / 20\n", s.FormattingScore)
	fmt.Fprintf(&sb, "Words: %d  Pages: ~%d\n", s.Details.WordCount, s.Details.EstimatedPages)
	if len(s.Details.FormattingIssues) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Issues", s.Details.FormattingIssues, maxItemsToShow)
	}

	p.printBox("STRUCTURE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSemantic outputs per-section similarities, strongest first.
func (p *Printer) PrintSemantic(s *types.SemanticResult) {
	if s == nil || len(s.SectionSimilarities) == 0 {
		return
	}

	names := make([]string, 0, len(s.SectionSimilarities))
	for name := range s.SectionSimilarities {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.SectionSimilarities[names[i]], s.SectionSimilarities[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%-14s %.2f\n", name, s.SectionSimilarities[name])
	}
	p.printBox("SEMANTIC SIMILARITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the ranked suggestions.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		fmt.Fprintf(&sb, "#%d [%s] %s (+%d)\n", i+1, strings.ToUpper(string(s.Priority)), s.Title, s.EstimatedImpact)
		fmt.Fprintf(&sb, "    %s\n", s.Description)
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(suggestions) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more suggestions", len(suggestions)-maxItemsToShow)
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReview outputs the qualitative review.
func (p *Printer) PrintReview(r *types.Review) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Fit:        %s\n", r.QualitativeFit)
	fmt.Fprintf(&sb, "Interview:  %d / 10\n", r.InterviewReadiness)
	if r.FitExplanation != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.FitExplanation)
	}
	sb.WriteString("\n")
	writeList(&sb, "Strengths", r.Strengths, 3)
	writeList(&sb, "Gaps", r.Gaps, 3)
	if r.OverallRecommendation != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.OverallRecommendation)
	}

	p.printBox("REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs applied and rejected edits with the score estimate.
func (p *Printer) PrintOptimization(r *types.OptimizationResult) {
	if r == nil {
		return
	}
	if !r.Available {
		p.printBox("OPTIMIZATION", "Generative service unavailable; résumé left unchanged.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Format:     %s\n", r.Format)
	fmt.Fprintf(&sb, "Score:      %d → ~%d\n", r.OriginalScore, r.EstimatedScore)
	fmt.Fprintf(&sb, "Applied:    %d   Rejected: %d\n\n", len(r.Changes), len(r.Rejected))

	count := min(len(r.Changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := r.Changes[i]
		fmt.Fprintf(&sb, "• %s/%s: %s\n", c.Section, c.Kind, c.Optimized)
	}
	if len(r.Changes) > maxItemsToShow {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(r.Changes)-maxItemsToShow)
	}
	for _, rej := range r.Rejected[:min(len(r.Rejected), 3)] {
		fmt.Fprintf(&sb, "⚠ %s: %s\n", rej.Section, rej.Cause)
	}
	sb.WriteString("\n")

	writeList(&sb, "Keywords added", r.KeywordsAdded, maxItemsToShow)
	impossible := make([]string, 0, len(r.KeywordsImpossible))
	for _, k := range r.KeywordsImpossible {
		impossible = append(impossible, k.Keyword)
	}
	writeList(&sb, "Cannot claim", impossible, 3)

	p.printBox("OPTIMIZATION", strings.TrimSuffix(sb.String(), "\n"))
	if r.Syntax != nil {
		p.PrintSyntax(r.Syntax)
	}
}

// PrintSyntax outputs LaTeX syntax validation results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSyntax(s *types.SyntaxResult) {
	if s == nil || s.Valid {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ LATEX SYNTAX OK")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d problems:\n\n", len(s.Errors))
	for _, e := range s.Errors {
		fmt.Fprintf(&sb, "⚠ %s\n", e)
	}
	p.printBox("LATEX SYNTAX", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs saved analysis summaries, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(summaries []types.AnalysisSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(p.out, "No saved analyses.")
		return
	}

	var sb strings.Builder
	for _, s := range summaries {
		title := s.JobTitle
		if s.Company != "" {
			title = fmt.Sprintf("%s @ %s", title, s.Company)
		}
		// the title gets its own line so long postings keep the full box width
		fmt.Fprintf(&sb, "%s  %s  %3d  %s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Overall, s.Status)
		fmt.Fprintf(&sb, "    %s\n", title)
	}
	p.printBox(fmt.Sprintf("HISTORY (%d)", len(summaries)), strings.TrimSuffix(sb.String(), "\n"))
}
