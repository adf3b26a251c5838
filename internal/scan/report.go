// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes the scan reports as a text table, riskiest file first.
func RenderTable(w io.Writer, reports []FileReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Score", "Risk", "Adjustbox", "Resize/Scale", "Tiny/Script", "Foot/Small"})

	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Path,
			r.Score,
			string(r.Level),
			r.Count("adjustbox"),
			r.Count("resizebox") + r.Count("scalebox"),
			r.Count("tiny") + r.Count("scriptsize"),
			r.Count("footnotesize") + r.Count("small"),
		})
	}
	t.Render()
}

// RenderFindings writes the per-line detail for one file.
func RenderFindings(w io.Writer, r FileReport) {
	fmt.Fprintf(w, "%s: score %d (%s)\n", r.Path, r.Score, r.Level)
	for _, f := range r.Findings {
		fmt.Fprintf(w, "  %4d  %-12s  %s\n", f.Line, f.Directive, f.Text)
	}
}

// RenderOverflow writes a one-line overflow summary for a log file.
func RenderOverflow(w io.Writer, logPath string, rep OverflowReport) {
	if !rep.HasOverflow() {
		fmt.Fprintf(w, "%s: no overfull boxes\n", logPath)
		return
	}
	fmt.Fprintf(w, "%s: %d overfull hbox (max %.1fpt), %d overfull vbox (max %.1fpt)\n",
		logPath, rep.HboxCount, rep.MaxHbox, rep.VboxCount, rep.MaxVbox)
}
