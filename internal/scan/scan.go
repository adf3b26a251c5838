// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan inspects LaTeX sources for font-shrinking directives that
// hurt readability and inspects compile logs for overfull box warnings.
// Directives are weighted; each file gets a score and a risk level.
package scan

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// directive is one risky construct the scanner looks for.
type directive struct {
	name   string
	weight int
	// match reports whether a single source line uses the construct.
	match func(line string) bool
}

// contains returns a line matcher for a literal substring.
func contains(sub string) func(string) bool {
	return func(line string) bool { return strings.Contains(line, sub) }
}

// directives, heaviest first. adjustbox hides arbitrary shrinking and is the
// worst offender; \small is nearly harmless. tabularx and landscape carry no
// weight but are counted, since they are the preferred alternatives.
var directives = []directive{
	{"adjustbox", 10, func(line string) bool {
		return strings.Contains(line, `\adjustbox`) && strings.Contains(line, "max width")
	}},
	{"resizebox", 8, contains(`\resizebox`)},
	{"scalebox", 8, contains(`\scalebox`)},
	{"tiny", 5, contains(`\tiny`)},
	{"scriptsize", 5, contains(`\scriptsize`)},
	{"footnotesize", 2, contains(`\footnotesize`)},
	{"small", 1, func(line string) bool {
		// \small inside listings style setup is fine.
		return strings.Contains(line, `\small`) && !strings.Contains(line, "basicstyle")
	}},
	{"tabularx", 0, contains(`\begin{tabularx}`)},
	{"landscape", 0, contains(`\begin{landscape}`)},
}

// RiskLevel buckets a score into HIGH, MEDIUM, LOW, or MINIMAL.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "HIGH"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskLow     RiskLevel = "LOW"
	RiskMinimal RiskLevel = "MINIMAL"
)

// LevelFor maps a score to its risk level.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 20:
		return RiskHigh
	case score >= 10:
		return RiskMedium
	case score >= 5:
		return RiskLow
	}
	return RiskMinimal
}

// Finding is one risky directive occurrence.
type Finding struct {
	Directive string
	Line      int
	Text      string
}

// FileReport is the scan result for one document.
type FileReport struct {
	Path     string
	Findings []Finding
	Score    int
	Level    RiskLevel
}

// Count returns how many findings name the given directive.
func (r FileReport) Count(directiveName string) int {
	n := 0
	for _, f := range r.Findings {
		if f.Directive == directiveName {
			n++
		}
	}
	return n
}

// ScanContent scans document text line by line.
func ScanContent(path, content string) FileReport {
	report := FileReport{Path: path}

	for i, line := range strings.Split(content, "\n") {
		for _, d := range directives {
			if d.match(line) {
				report.Findings = append(report.Findings, Finding{
					Directive: d.name,
					Line:      i + 1,
					Text:      strings.TrimSpace(line),
				})
				report.Score += d.weight
			}
		}
	}

	report.Level = LevelFor(report.Score)
	return report
}

// ScanFile reads and scans a single document.
func ScanFile(path string) (FileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ScanContent(path, string(data)), nil
}

// ScanAll scans every path and returns reports sorted by score descending,
// ties broken by path. Unreadable files are returned as errors in the second
// slice; the scan continues past them.
func ScanAll(paths []string) ([]FileReport, []error) {
	var reports []FileReport
	var errs []error
	for _, p := range paths {
		r, err := ScanFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Score != reports[j].Score {
			return reports[i].Score > reports[j].Score
		}
		return reports[i].Path < reports[j].Path
	})
	return reports, errs
}

var (
	overfullHboxRe = regexp.MustCompile(`Overfull \\hbox \(([0-9.]+)pt too wide\)`)
	overfullVboxRe = regexp.MustCompile(`Overfull \\vbox \(([0-9.]+)pt too high\)`)
)

// OverflowReport summarizes overfull box warnings from an engine log.
type OverflowReport struct {
	HboxCount int
	VboxCount int
	MaxHbox   float64
	MaxVbox   float64
}

// HasOverflow reports whether the log contained any overfull box warning.
func (o OverflowReport) HasOverflow() bool {
	return o.HboxCount > 0 || o.VboxCount > 0
}

// CheckLog parses an engine .log file for overfull hbox/vbox warnings.
func CheckLog(logPath string) (OverflowReport, error) {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return OverflowReport{}, fmt.Errorf("reading log %s: %w", logPath, err)
	}
	return parseLog(string(data)), nil
}

func parseLog(content string) OverflowReport {
	var rep OverflowReport
	for _, m := range overfullHboxRe.FindAllStringSubmatch(content, -1) {
		rep.HboxCount++
		if pt := parsePt(m[1]); pt > rep.MaxHbox {
			rep.MaxHbox = pt
		}
	}
	for _, m := range overfullVboxRe.FindAllStringSubmatch(content, -1) {
		rep.VboxCount++
		if pt := parsePt(m[1]); pt > rep.MaxVbox {
			rep.MaxVbox = pt
		}
	}
	return rep
}

func parsePt(s string) float64 {
	var v float64
	fmt.Sscanf(s, "%f", &v)
	return v
}
