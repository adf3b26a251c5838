package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lectern/internal/normalize"
	"github.com/pdiddy/lectern/internal/texc"
	"github.com/pdiddy/lectern/pkg/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile [paths...]",
	Short: "Compile lecture notes to PDF",
	Long: `Compile runs the LaTeX engine on each document. The engine is picked per
document (xelatex for CJK or system-font documents, otherwise pdflatex) and
runs twice so the table of contents and forward references resolve. A
non-zero engine exit is tolerated as long as the PDF is produced.

Finished PDFs are copied to the output directory, renamed to
university_course_NN.pdf when the path carries that structure.`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	compileCmd.Flags().Int("runs", 0, "engine passes per document (default 2)")
	compileCmd.Flags().Duration("timeout", 0, "timeout per engine pass (default 120s)")
	compileCmd.Flags().String("output-dir", "", "copy finished PDFs here (default: output/)")
	compileCmd.Flags().Bool("keep-aux", false, "keep auxiliary files after compiling")
	compileCmd.Flags().Bool("no-rename", false, "keep source file names for output PDFs")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .tex files or directories")
	}

	runs, _ := cmd.Flags().GetInt("runs")
	if runs == 0 {
		runs = viper.GetInt("compile.runs")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("compile.timeout")
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("compile.output_dir")
	}
	if outputDir == "" {
		outputDir = "output"
	}
	keepAux, _ := cmd.Flags().GetBool("keep-aux")
	noRename, _ := cmd.Flags().GetBool("no-rename")

	cfg := types.CompileConfig{
		Runs:      runs,
		Timeout:   timeout,
		OutputDir: outputDir,
		KeepAux:   keepAux,
		Rename:    !noRename,
	}

	// Rules are only needed for output renaming; without them PDFs keep
	// their source names.
	rules, err := loadCourseRules(cmd)
	if err != nil && cfg.Rename {
		fmt.Fprintf(os.Stderr, "warning: %v; output PDFs keep source names\n", err)
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

	compiler := texc.NewCompiler(cfg, rules)

	start := time.Now()
	result := texc.CompileBatch(cmd.Context(), compiler, paths, rec, os.Stdout)
	fmt.Fprintf(os.Stdout, "Elapsed: %s\n", time.Since(start).Round(time.Second))

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed to compile", result.Failed)
	}
	return nil
}
