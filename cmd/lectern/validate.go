package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lectern/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Check notes for constructs the template forbids",
	Long: `Validate checks each document for a missing \begin{document}, stray
\maketitle lines, and preamble-only commands placed in the body. With --fix
the mechanical problems are corrected in place: \maketitle lines are dropped
and preamble commands in the body are commented out.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	validateCmd.Flags().Bool("fix", false, "apply mechanical fixes in place")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .tex files or directories")
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	paths, err := collectTexFiles(args, recursive)
	if err != nil {
		return err
	}
	fix, _ := cmd.Flags().GetBool("fix")

	clean, flagged, failed := 0, 0, 0
	for _, p := range paths {
		issues, err := validate.File(p, fix, os.Stdout)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "failed: %s (%v)\n", p, err)
		case len(issues) > 0:
			flagged++
		default:
			clean++
		}
	}

	fmt.Fprintf(os.Stdout, "\nValidation summary: %d clean, %d flagged, %d failed (total: %d)\n",
		clean, flagged, failed, len(paths))
	if failed > 0 {
		return fmt.Errorf("%d document(s) could not be validated", failed)
	}
	return nil
}
