package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryGet,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultListLimit, "Maximum number of analyses to list")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Print JSON")

	historyCmd.AddCommand(historyListCmd, historyGetCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyLimit < 1 {
		return fmt.Errorf("--limit must be a positive integer")
	}
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	summaries, err := a.store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), "", summaries)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(summaries)
	return nil
}

func runHistoryGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	analysis, err := a.store.Get(cmd.Context(), args[0])
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("analysis %s not found", args[0])
	}
	if err != nil {
		return err
	}
	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), "", analysis)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(analysis)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("analysis %s not found", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %s\n", args[0])
	return nil
}
