package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lectern/internal/normalize"
	"github.com/pdiddy/lectern/internal/project"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [paths...]",
	Short: "Rewrite lecture notes onto the shared template",
	Long: `Normalize replaces each document's preamble with the shared template and
inserts a generated metadata block (course, lecture, instructor, purpose)
directly after \begin{document}. The body is preserved byte-for-byte.

Course and instructor come from the ordered course-rule list; the longest
rule substring found in the document path wins, ties falling to the earlier
rule. A rule with an empty match is the fallback for unknown paths.`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("template", "", "template file (default: templates/standard_preamble.tex)")
	normalizeCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	normalizeCmd.Flags().Bool("dry-run", false, "report what would change without writing")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .tex files or directories")
	}

	templatePath, _ := cmd.Flags().GetString("template")
	if templatePath == "" {
		templatePath = viper.GetString("normalize.template_path")
	}
	if templatePath == "" {
		templatePath = project.NewLayout(viper.GetString("root")).DefaultTemplate()
	}
	template, err := project.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	rules, err := loadCourseRules(cmd)
	if err != nil {
		return err
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	paths, err := collectTexFiles(args, recursive)
	if err != nil {
		return err
	}

	store, err := openRecorder(cmd)
	if err != nil {
		return err
	}
	var rec normalize.Recorder
	if store != nil {
		rec = store
		defer store.Close()
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	result := normalize.Batch(cmd.Context(), paths, template, rules, dryRun, rec, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed normalization", result.Failed)
	}
	return nil
}

// collectTexFiles expands file and directory arguments into a flat document
// list, deduplicating while keeping argument order.
func collectTexFiles(args []string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, arg := range args {
		files, err := project.FindTexFiles(arg, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				paths = append(paths, f)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .tex files found")
	}
	return paths, nil
}
