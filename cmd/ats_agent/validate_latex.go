package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/validation"
)

var validateLatexCmd = &cobra.Command{
	Use:   "validate-latex",
	Short: "Check LaTeX source for structural errors",
	Long:  "Checks a LaTeX résumé for unbalanced braces, unclosed environments and a missing document body.",
	RunE:  runValidateLatex,
}

var (
	validateLatexInput string
	validateLatexJSON  bool
)

func init() {
	validateLatexCmd.Flags().StringVarP(&validateLatexInput, "in", "i", "", "Path to LaTeX file (required)")
	validateLatexCmd.Flags().BoolVar(&validateLatexJSON, "json", false, "Print the result as JSON")

	if err := validateLatexCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateLatexCmd)
}

func runValidateLatex(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(validateLatexInput)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("LaTeX file not found: %s", validateLatexInput)
		}
		return fmt.Errorf("failed to read LaTeX file: %w", err)
	}

	result := validation.ValidateLatexSyntax(string(content))
	if validateLatexJSON {
		if err := writeJSON(cmd.OutOrStdout(), "", result); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSyntax(&result)
	}

	if !result.Valid {
		// exit code 1
		return fmt.Errorf("validation found %d error(s)", len(result.Errors))
	}
	return nil
}
