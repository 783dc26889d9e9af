package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé against a job description",
	Long: "Scores keyword coverage, semantic similarity and résumé structure, combines them into an overall " +
		"score and recruiter verdict, and lists ranked improvement suggestions.",
	RunE: runAnalyze,
}

var (
	analyzeResume string
	analyzeJob    string
	analyzeJobURL string
	analyzeReview bool
	analyzeSave   bool
	analyzeJSON   bool
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to résumé file (.pdf, .docx, .txt, .tex)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description file")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "job-url", "u", "", "URL to fetch job description from")
	analyzeCmd.Flags().BoolVar(&analyzeReview, "review", false, "Include a qualitative review from the generative service")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the analysis to history")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the analysis JSON to this file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, analyzeSave)
	if err != nil {
		return err
	}
	defer a.Close()

	resumeText, err := readResume(resolve(analyzeResume, a.cfg.Resume))
	if err != nil {
		return err
	}
	jobText, err := a.readJob(ctx, analyzeJob, analyzeJobURL)
	if err != nil {
		return err
	}

	analysis, err := a.analyzer().Analyze(ctx, resumeText, jobText, pipeline.Options{
		Review: analyzeReview,
		Save:   analyzeSave,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeOut != "" {
		if err := writeJSON(cmd.OutOrStdout(), analyzeOut, analysis); err != nil {
			return err
		}
	}
	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), "", analysis)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(analysis)
	return nil
}
