// Package rewriting asks the generative service for keyword-targeted rewrites
// of a résumé and applies the ones that stay truthful to the original.
package rewriting

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/latex"
	"github.com/jonathan/ats-scorer/internal/llm"
	applog "github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/matching"
	"github.com/jonathan/ats-scorer/internal/prompts"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/jonathan/ats-scorer/internal/validation"
)

// Prompt truncation limits, in bytes.
const (
	MaxResumeChars = 4000
	MaxJobChars    = 3000
)

// DefaultScoreGain is added to the current score when the model gives no estimate.
const DefaultScoreGain = 5

// maxLoggedResponse caps how much of an unusable answer is logged.
const maxLoggedResponse = 200

// weakSimilarity is the section similarity below which a section is weak.
const weakSimilarity = 50

// Output formats.
const (
	FormatLatex = "latex"
	FormatText  = "text"
)

// Context is what the optimizer knows from a prior analysis.
type Context struct {
	MissingRequired  []string
	MissingPreferred []string
	ExistingSkills   []string
	WeakSections     []string
	CurrentScore     int
}

// NewContext collects the optimization inputs from an analysis.
func NewContext(a *types.Analysis) Context {
	if a == nil {
		return Context{}
	}
	oc := Context{
		MissingRequired:  a.Keywords.MissingRequired,
		MissingPreferred: a.Keywords.MissingPreferred,
		CurrentScore:     a.Scores.Overall,
	}
	if a.Resume != nil {
		oc.ExistingSkills = a.Resume.Skills
	}
	for name, sim := range a.Semantic.SectionSimilarities {
		if sim < weakSimilarity {
			oc.WeakSections = append(oc.WeakSections, name)
		}
	}
	sort.Strings(oc.WeakSections)
	return oc
}

func (oc Context) keywords() []string {
	return append(append([]string{}, oc.MissingRequired...), oc.MissingPreferred...)
}

// Optimizer rewrites résumés through the generative service. A nil Client
// disables it and every result comes back unavailable.
type Optimizer struct {
	Client llm.Client
	Logger *zap.Logger
}

func (o *Optimizer) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// OptimizeLatex edits LaTeX source in place. Only the about section, the
// skills section and individual bullets change; every other line is kept
// byte for byte. The assembled output is checked for syntax problems.
func (o *Optimizer) OptimizeLatex(ctx context.Context, source, jobText string, oc Context) *types.OptimizationResult {
	result := unavailable(source, FormatLatex, oc)
	if o == nil || o.Client == nil {
		return result
	}
	logger := o.logger()
	m := latex.Parse(source)

	prompt, err := prompts.Render("optimize.json", "optimize-latex", map[string]string{
		"JobDescription":    validation.PrepareUntrusted(llm.Truncate(jobText, MaxJobChars), "job description", logger),
		"MissingRequired":   listOrNone(oc.MissingRequired),
		"MissingPreferred":  listOrNone(oc.MissingPreferred),
		"CurrentScore":      strconv.Itoa(oc.CurrentScore),
		"ExistingSkills":    listOrNone(oc.ExistingSkills),
		"About":             validation.PrepareUntrusted(sectionBody(m.About), "about section", logger),
		"Skills":            validation.PrepareUntrusted(sectionBody(m.Skills), "skills section", logger),
		"ExperienceBullets": validation.PrepareUntrusted(describeExperience(m), "experience bullets", logger),
		"ProjectBullets":    validation.PrepareUntrusted(describeProjects(m), "project bullets", logger),
	})
	if err != nil {
		logger.Error("optimization prompt unavailable", zap.Error(err))
		return result
	}
	resp, ok := o.generate(ctx, prompt, logger)
	if !ok {
		return result
	}

	f := newFilter(latex.ToPlain(latex.Body(source)), oc)
	plan := latex.NewEditPlan()

	replaceLatexSection := func(kind types.ChangeKind, sec *latex.Section, text string) {
		if text == "" {
			return
		}
		change := types.Change{Kind: kind, Section: string(kind), Optimized: text}
		if sec == nil {
			f.reject(change, nil, fmt.Sprintf("no %s section in the document", kind))
			return
		}
		change.Section = sec.Name
		change.LineNumber = sec.StartLine
		change.Original = sectionBody(sec)
		if !validation.BalancedBraces(text) {
			f.reject(change, nil, "unbalanced braces")
			return
		}
		if f.accept(change, latex.ToPlain(change.Original), latex.ToPlain(text)) {
			plan.ReplaceSection(*sec, text)
		}
	}
	replaceLatexSection(types.ChangeSummary, m.About, resp.Summary())
	replaceLatexSection(types.ChangeSkills, m.Skills, resp.Skills())

	edits, unresolved := MapBulletEdits(m, resp.BulletChanges)
	for _, c := range unresolved {
		f.reject(bulletChange(c, 0, c.Source(), c.Text()), nil, "bullet target not found")
	}
	targeted := map[int]bool{}
	for _, e := range edits {
		line := m.Line(e.Bullet.Line)
		var text, replacement string
		if e.Change.HasLatex() {
			text = latex.UnwrapBullet(e.Change.Text())
			replacement = latex.ReplaceBulletLatex(line, text)
		} else {
			// plain-text answers are escaped before they reach the source
			text = latex.EscapeLaTeX(e.Change.Text())
			replacement = latex.ReplaceBulletText(line, e.Change.Text())
		}
		change := bulletChange(e.Change, e.Bullet.Line, strings.TrimSpace(line), strings.TrimSpace(replacement))
		switch {
		case targeted[e.Bullet.Line]:
			f.reject(change, nil, "bullet already rewritten")
			continue
		case !validation.BalancedBraces(text):
			f.reject(change, nil, "unbalanced braces")
			continue
		}
		if f.accept(change, e.Bullet.Text, latex.ToPlain(text)) {
			targeted[e.Bullet.Line] = true
			plan.ReplaceLine(e.Bullet.Line, replacement)
		}
	}

	output := latex.Assemble(m, plan)
	syntax := validation.ValidateLatexSyntax(output)
	if !syntax.Valid {
		logger.Warn("optimized source has syntax problems", zap.Strings("errors", syntax.Errors))
	}
	f.finish(result, resp, output, latex.ToPlain(latex.Body(output)), latex.ToPlain(latex.Body(source)))
	result.Syntax = &syntax
	return result
}

// OptimizePlain edits plain résumé text. The summary and skills sections are
// replaced under their headers and bullets are replaced by exact text.
func (o *Optimizer) OptimizePlain(ctx context.Context, text, jobText string, oc Context) *types.OptimizationResult {
	result := unavailable(text, FormatText, oc)
	if o == nil || o.Client == nil {
		return result
	}
	logger := o.logger()

	prompt, err := prompts.Render("optimize.json", "optimize-plain", map[string]string{
		"Resume":           validation.PrepareUntrusted(llm.Truncate(text, MaxResumeChars), "resume", logger),
		"JobDescription":   validation.PrepareUntrusted(llm.Truncate(jobText, MaxJobChars), "job description", logger),
		"MissingRequired":  listOrNone(oc.MissingRequired),
		"MissingPreferred": listOrNone(oc.MissingPreferred),
		"WeakSections":     listOrNone(oc.WeakSections),
		"CurrentScore":     strconv.Itoa(oc.CurrentScore),
		"ExistingSkills":   listOrNone(oc.ExistingSkills),
	})
	if err != nil {
		logger.Error("optimization prompt unavailable", zap.Error(err))
		return result
	}
	resp, ok := o.generate(ctx, prompt, logger)
	if !ok {
		return result
	}

	f := newFilter(text, oc)
	output := text

	replacePlainSection := func(kind types.ChangeKind, aliases []string, content string) {
		if content == "" {
			return
		}
		change := types.Change{Kind: kind, Section: string(kind), Optimized: content}
		updated, sec, ok := replaceSection(output, aliases, content)
		if !ok {
			f.reject(change, nil, fmt.Sprintf("no %s section in the document", kind))
			return
		}
		change.Section = sec.name
		change.LineNumber = sec.line
		change.Original = sec.body
		if f.accept(change, sec.body, content) {
			output = updated
		}
	}
	replacePlainSection(types.ChangeSummary, summaryAliases, resp.Summary())
	replacePlainSection(types.ChangeSkills, skillsAliases, resp.Skills())

	for _, c := range resp.BulletChanges {
		original, optimized := c.Source(), c.Text()
		change := bulletChange(c, lineOf(text, original), original, optimized)
		if original == "" || !strings.Contains(output, original) {
			f.reject(change, nil, "original bullet not found")
			continue
		}
		if f.accept(change, original, optimized) {
			output = strings.Replace(output, original, optimized, 1)
		}
	}

	f.finish(result, resp, output, output, text)
	return result
}

func (o *Optimizer) generate(ctx context.Context, prompt string, logger *zap.Logger) (*Response, bool) {
	raw, err := o.Client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		logger.Warn("optimization unavailable", zap.Error(err))
		return nil, false
	}
	resp, err := ParseOptimization(raw)
	if err != nil {
		logger.Warn("optimization response unusable",
			zap.Error(err), zap.String("response", applog.TruncateForLog(raw, maxLoggedResponse)))
		return nil, false
	}
	return resp, true
}

func unavailable(input, format string, oc Context) *types.OptimizationResult {
	return &types.OptimizationResult{
		Format:             format,
		Output:             input,
		Changes:            []types.Change{},
		Rejected:           []types.RejectedChange{},
		KeywordsAdded:      []string{},
		KeywordsImpossible: []types.ImpossibleKeyword{},
		OriginalScore:      oc.CurrentScore,
		EstimatedScore:     oc.CurrentScore,
	}
}

// filter decides which proposed replacements are applied.
type filter struct {
	checker  *validation.Checker
	document string
	keywords []string
	changes  []types.Change
	rejected []types.RejectedChange
}

func newFilter(document string, oc Context) *filter {
	return &filter{checker: validation.NewChecker(document), document: document, keywords: oc.keywords()}
}

// accept records change as applied when its plain replacement names no
// unsupported technology, states no new figures and does not stuff keywords.
// Bullets may only restate their own figures; sections may restate any
// figure in the document.
func (f *filter) accept(change types.Change, original, replacement string) bool {
	if strings.TrimSpace(replacement) == "" {
		f.reject(change, nil, "empty replacement")
		return false
	}
	if truth := f.checker.Check(replacement); !truth.Valid {
		f.reject(change, truth.Fabricated, "mentions technologies not supported by the original")
		return false
	}
	source := original
	if change.Kind != types.ChangeBullet {
		source = f.document
	}
	if figures := inflatedFigures(source, replacement); len(figures) > 0 {
		f.reject(change, nil, "states figures not in the original: "+strings.Join(figures, ", "))
		return false
	}
	if stuffed := stuffedKeywords(original, replacement, f.keywords); len(stuffed) > 0 {
		f.reject(change, nil, "repeats keywords: "+strings.Join(stuffed, ", "))
		return false
	}
	f.changes = append(f.changes, change)
	return true
}

func (f *filter) reject(change types.Change, fabricated []string, cause string) {
	f.rejected = append(f.rejected, types.RejectedChange{Change: change, Fabricated: fabricated, Cause: cause})
}

// finish fills result from the applied edits. Claimed keywords are kept only
// when they appear in the new plain text and did not appear in the old.
func (f *filter) finish(result *types.OptimizationResult, resp *Response, output, newPlain, oldPlain string) {
	result.Available = true
	result.Output = output
	result.Changes = append(result.Changes, f.changes...)
	result.Rejected = append(result.Rejected, f.rejected...)
	result.KeywordsImpossible = append(result.KeywordsImpossible, resp.KeywordsImpossible...)
	result.Notes = strings.TrimSpace(resp.Notes)

	newLower, oldLower := strings.ToLower(newPlain), strings.ToLower(oldPlain)
	for _, kw := range resp.KeywordsAdded {
		key := strings.ToLower(strings.TrimSpace(kw))
		if key != "" && matching.ContainsWord(newLower, key) && !matching.ContainsWord(oldLower, key) {
			result.KeywordsAdded = append(result.KeywordsAdded, kw)
		}
	}

	if len(f.changes) == 0 {
		return
	}
	estimate := math.Min(100, float64(result.OriginalScore+DefaultScoreGain))
	if resp.EstimatedNewScore != nil {
		estimate = math.Max(0, math.Min(100, *resp.EstimatedNewScore))
	}
	result.EstimatedScore = int(math.Round(estimate))
}

func bulletChange(c BulletChange, line int, original, optimized string) types.Change {
	section := "experience"
	if isProjectSection(c.Section) {
		section = "projects"
	}
	return types.Change{
		Kind:          types.ChangeBullet,
		Section:       section,
		LineNumber:    line,
		Original:      original,
		Optimized:     optimized,
		KeywordsAdded: c.KeywordsAdded,
		Reason:        c.Reason,
	}
}

// sectionBody is the raw section without its \section line.
func sectionBody(sec *latex.Section) string {
	if sec == nil {
		return ""
	}
	_, body, _ := strings.Cut(sec.Raw, "\n")
	return strings.TrimSpace(body)
}

func describeExperience(m *latex.StructuralMap) string {
	var b strings.Builder
	for i, e := range m.Experience {
		fmt.Fprintf(&b, "Entry %d: %s", i, e.Company)
		if e.Role != "" {
			fmt.Fprintf(&b, " | %s", e.Role)
		}
		b.WriteString("\n")
		writeBullets(&b, "experience", i, e.Bullets)
	}
	return orNone(b.String())
}

func describeProjects(m *latex.StructuralMap) string {
	var b strings.Builder
	for i, p := range m.Projects {
		fmt.Fprintf(&b, "Entry %d: %s\n", i, p.Name)
		writeBullets(&b, "projects", i, p.Bullets)
	}
	return orNone(b.String())
}

func writeBullets(b *strings.Builder, section string, entry int, bullets []latex.Bullet) {
	for j, bullet := range bullets {
		fmt.Fprintf(b, "  [section=%s entry_index=%d bullet_index=%d] %s\n", section, entry, j, bullet.Raw)
	}
}

func listOrNone(items []string) string {
	return orNone(strings.Join(items, ", "))
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return strings.TrimSpace(s)
}

// lineOf is the 1-indexed line holding the first occurrence of s, or 0.
func lineOf(text, s string) int {
	if s == "" {
		return 0
	}
	i := strings.Index(text, s)
	if i < 0 {
		return 0
	}
	return strings.Count(text[:i], "\n") + 1
}
