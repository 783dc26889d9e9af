package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/rewriting"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a résumé to cover more of a job description's keywords",
	Long: "Analyzes the résumé, asks the generative service for keyword-targeted rewrites, and applies only " +
		"the replacements that do not introduce technologies missing from the original résumé.",
	RunE: runOptimize,
}

var (
	optimizeResume string
	optimizeJob    string
	optimizeJobURL string
	optimizeFormat string
	optimizeOut    string
	optimizeJSON   bool
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeResume, "resume", "r", "", "Path to résumé file (.tex, .txt, .pdf, .docx)")
	optimizeCmd.Flags().StringVarP(&optimizeJob, "job", "j", "", "Path to job description file")
	optimizeCmd.Flags().StringVarP(&optimizeJobURL, "job-url", "u", "", "URL to fetch job description from")
	optimizeCmd.Flags().StringVarP(&optimizeFormat, "format", "f", "", "Résumé format: latex or text (default: detect)")
	optimizeCmd.Flags().StringVarP(&optimizeOut, "out", "o", "", "Path for the optimized résumé (default: <resume>.optimized.<ext>)")
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "Print the optimization result as JSON")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	switch optimizeFormat {
	case "", rewriting.FormatLatex, rewriting.FormatText:
	default:
		return fmt.Errorf("invalid --format %q: must be %s or %s", optimizeFormat, rewriting.FormatLatex, rewriting.FormatText)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	resumePath := resolve(optimizeResume, a.cfg.Resume)
	resumeText, err := readResume(resumePath)
	if err != nil {
		return err
	}
	jobText, err := a.readJob(ctx, optimizeJob, optimizeJobURL)
	if err != nil {
		return err
	}

	result, analysis, err := a.analyzer().Optimize(ctx, resumeText, jobText, optimizeFormat)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Available {
		path := optimizeOut
		if path == "" {
			path = optimizedPath(resumePath, result.Format)
		}
		if err := writeFile(path, []byte(result.Output)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Optimized résumé: %s\n", path)
	}

	if optimizeJSON {
		return writeJSON(out, "", result)
	}

	p := observability.NewPrinter(out)
	p.PrintScores(analysis)
	p.PrintOptimization(result)
	return nil
}

// optimizedPath places the output next to the input: resume.tex becomes
// resume.optimized.tex. Non-LaTeX output is always written as .txt.
func optimizedPath(resumePath, format string) string {
	ext := ".txt"
	if format == rewriting.FormatLatex {
		ext = ".tex"
	}
	base := strings.TrimSuffix(resumePath, filepath.Ext(resumePath))
	return base + ".optimized" + ext
}
