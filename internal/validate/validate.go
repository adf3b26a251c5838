// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks lecture notes for constructs the shared template
// forbids and applies mechanical fixes. The template renders its own title
// block, so a stray \maketitle is removed; preamble-only commands after the
// body marker would abort the engine, so they are commented out.
package validate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/lectern/internal/normalize"
)

// preambleOnly lists commands that must not appear after the body marker.
var preambleOnly = []string{
	`\usepackage`,
	`\definecolor`,
	`\newtcolorbox`,
	`\geometry`,
	`\setmainfont`,
	`\documentclass`,
}

// IssueKind classifies a validation issue.
type IssueKind string

const (
	IssueNoBodyMarker   IssueKind = "no_body_marker"
	IssueStrayMaketitle IssueKind = "stray_maketitle"
	IssuePreambleInBody IssueKind = "preamble_command_in_body"
)

// Issue is one problem found in a document.
type Issue struct {
	Kind IssueKind
	Line int
	Text string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Kind, i.Text)
}

// Check scans document text and returns all issues found. A missing body
// marker is reported alone, since the other checks are meaningless without it.
func Check(content string) []Issue {
	markerIdx := strings.Index(content, normalize.BodyMarker)
	if markerIdx < 0 {
		return []Issue{{Kind: IssueNoBodyMarker, Line: 1, Text: "document has no " + normalize.BodyMarker}}
	}
	markerLine := strings.Count(content[:markerIdx], "\n") + 1

	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		if lineNo < markerLine {
			continue
		}
		if lineNo == markerLine {
			// Only the tail after the marker counts as body text.
			_, line, _ = strings.Cut(line, normalize.BodyMarker)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == `\maketitle` {
			issues = append(issues, Issue{Kind: IssueStrayMaketitle, Line: lineNo, Text: trimmed})
			continue
		}
		if strings.HasPrefix(trimmed, "%") {
			continue
		}
		for _, cmd := range preambleOnly {
			if strings.Contains(line, cmd) {
				issues = append(issues, Issue{Kind: IssuePreambleInBody, Line: lineNo, Text: trimmed})
				break
			}
		}
	}
	return issues
}

// Fix applies mechanical fixes and returns the rewritten text plus the issues
// it fixed. Stray \maketitle lines are dropped; preamble commands in the body
// are commented out. Unfixable issues (no body marker) are returned untouched.
func Fix(content string) (string, []Issue) {
	issues := Check(content)
	if len(issues) == 0 || issues[0].Kind == IssueNoBodyMarker {
		return content, nil
	}

	fixLines := make(map[int]IssueKind, len(issues))
	for _, is := range issues {
		fixLines[is.Line] = is.Kind
	}

	markerIdx := strings.Index(content, normalize.BodyMarker)
	markerLine := strings.Count(content[:markerIdx], "\n") + 1

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		kind := fixLines[i+1]
		if kind != "" && i+1 == markerLine {
			// The marker shares this line; rewrite only the tail.
			head, tail, _ := strings.Cut(line, normalize.BodyMarker)
			switch kind {
			case IssueStrayMaketitle:
				out = append(out, head+normalize.BodyMarker)
			case IssuePreambleInBody:
				out = append(out, head+normalize.BodyMarker+" %"+tail)
			}
			continue
		}
		switch kind {
		case IssueStrayMaketitle:
			// drop the line
		case IssuePreambleInBody:
			out = append(out, "% "+line)
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), issues
}

// File validates one document on disk, optionally fixing it in place, and
// writes a per-file report to w. It returns the issues found.
func File(path string, fix bool, w io.Writer) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	issues := Check(string(data))
	if len(issues) == 0 {
		fmt.Fprintf(w, "ok:     %s\n", path)
		return nil, nil
	}

	fixed := false
	if fix {
		rewritten, applied := Fix(string(data))
		if len(applied) > 0 && rewritten != string(data) {
			if err := os.WriteFile(path, []byte(rewritten), 0o644); err != nil {
				return nil, fmt.Errorf("writing %s: %w", path, err)
			}
			fixed = true
		}
	}

	verb := "issues"
	if fixed {
		verb = "fixed"
	}
	fmt.Fprintf(w, "%s: %s\n", verb, path)
	for _, is := range issues {
		fmt.Fprintf(w, "    %s\n", is)
	}
	return issues, nil
}
