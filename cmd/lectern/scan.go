package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lectern/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan notes for font-shrinking directives",
	Long: `Scan greps each document for directives that shrink text to force content
onto the page (adjustbox, resizebox, \tiny and friends), scores them by
severity, and reports a risk level per file. With --logs it also checks the
engine .log next to each document for overfull box warnings.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	scanCmd.Flags().Bool("details", false, "list every finding with line numbers")
	scanCmd.Flags().Bool("logs", false, "also check engine logs for overfull boxes")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .tex files or directories")
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	paths, err := collectTexFiles(args, recursive)
	if err != nil {
		return err
	}

	reports, errs := scan.ScanAll(paths)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	details, _ := cmd.Flags().GetBool("details")
	if details {
		for _, r := range reports {
			scan.RenderFindings(os.Stdout, r)
		}
	} else {
		scan.RenderTable(os.Stdout, reports)
	}

	if checkLogs, _ := cmd.Flags().GetBool("logs"); checkLogs {
		fmt.Fprintln(os.Stdout)
		for _, p := range paths {
			logPath := strings.TrimSuffix(p, ".tex") + ".log"
			rep, err := scan.CheckLog(logPath)
			if err != nil {
				continue // not compiled yet
			}
			scan.RenderOverflow(os.Stdout, logPath, rep)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d file(s) could not be scanned", len(errs))
	}
	return nil
}
