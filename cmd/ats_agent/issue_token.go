package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an API bearer token",
	Long:  "Signs a bearer token for the REST API with JWT_SECRET. The subject is recorded as the owner of analyses saved with the token.",
	RunE:  runIssueToken,
}

var issueTokenSubject string

func init() {
	issueTokenCmd.Flags().StringVarP(&issueTokenSubject, "subject", "s", "", "Token subject, e.g. a client or user name (required)")
	_ = issueTokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, expiresAt, err := server.NewJWTService(jwtCfg).GenerateToken(issueTokenSubject)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "Expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
