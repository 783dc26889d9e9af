// Package main provides the ats_agent CLI: score a résumé against a job
// description, optimize it, browse saved analyses, or serve the REST API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS résumé scorer and optimizer",
	Long: "ats_agent scores how well a résumé matches a job description the way an applicant tracking " +
		"system would, suggests improvements, and rewrites résumés without inventing experience.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
