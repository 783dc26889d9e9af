package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/latex"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract structured data from a résumé",
	Long:  "Parses contact details, skills, experience, education and projects from a résumé and scores its structure.",
	RunE:  runParseResume,
}

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd",
	Short: "Extract keywords and requirements from a job description",
	Long:  "Parses title, company, experience level, required and preferred keywords, and categorized requirement lists.",
	RunE:  runParseJD,
}

var (
	parseResumeInput string
	parseResumeOut   string

	parseJDInput string
	parseJDURL   string
	parseJDOut   string
)

// parsedResume mirrors the parse/resume response of the API.
type parsedResume struct {
	Resume    *types.Resume         `json:"resume"`
	Structure types.StructureResult `json:"structure"`
	Latex     *latex.StructuralMap  `json:"latex,omitempty"`
}

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to résumé file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOut, "out", "o", "", "Write JSON to this file instead of stdout")
	_ = parseResumeCmd.MarkFlagRequired("in")

	parseJDCmd.Flags().StringVarP(&parseJDInput, "in", "i", "", "Path to job description file")
	parseJDCmd.Flags().StringVarP(&parseJDURL, "url", "u", "", "URL to fetch job description from")
	parseJDCmd.Flags().StringVarP(&parseJDOut, "out", "o", "", "Write JSON to this file instead of stdout")

	rootCmd.AddCommand(parseResumeCmd)
	rootCmd.AddCommand(parseJDCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	text, err := readResume(parseResumeInput)
	if err != nil {
		return err
	}

	resume := parsing.ParseResume(text)
	out := parsedResume{
		Resume:    resume,
		Structure: scoring.ScoreStructure(resume),
	}
	if latex.IsLatex(text) {
		out.Latex = latex.Parse(text)
	}
	return writeJSON(cmd.OutOrStdout(), parseResumeOut, out)
}

func runParseJD(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := a.readJob(ctx, parseJDInput, parseJDURL)
	if err != nil {
		return err
	}

	job := parsing.ParseJobDescription(ctx, text, a.analyzer().Phrases, logger.Component(a.logger, "parsing"))
	return writeJSON(cmd.OutOrStdout(), parseJDOut, job)
}
