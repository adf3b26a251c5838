package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lectern/internal/history"
	"github.com/pdiddy/lectern/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past normalize and compile runs",
	Long: `History lists the per-document outcomes of past batch runs, newest first.
Filters narrow by stage, course, or failure. --export writes the filtered
records as YAML to stdout instead of a table.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("stage", "", "filter by stage: normalize, compile, or validate")
	historyCmd.Flags().String("course", "", "filter by course identifier")
	historyCmd.Flags().Bool("failed", false, "show only failed documents")
	historyCmd.Flags().Int("limit", 0, "maximum number of records (default 50)")
	historyCmd.Flags().Bool("export", false, "write records as YAML to stdout")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openRecorder(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled by --no-history")
	}
	defer store.Close()

	stage, _ := cmd.Flags().GetString("stage")
	course, _ := cmd.Flags().GetString("course")
	failed, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := history.Filter{
		Stage:      types.Stage(stage),
		Course:     course,
		FailedOnly: failed,
		Limit:      limit,
	}

	if export, _ := cmd.Flags().GetBool("export"); export {
		return store.Export(cmd.Context(), filter, os.Stdout)
	}

	records, err := store.Recent(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No recorded runs.")
		return nil
	}
	history.RenderTable(os.Stdout, records)
	return nil
}
