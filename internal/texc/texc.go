// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package texc drives the external LaTeX engine: it picks the right engine
// for a document, runs it the required number of passes, cleans auxiliary
// files, and copies the finished PDF to the output directory.
package texc

import (
	"context"
	"os/exec"
	"strings"
)

const (
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
	binLualatex = "lualatex"
)

// engineSniffLen bounds how much of a document is inspected for engine hints.
const engineSniffLen = 5000

// xelatexHints force the xelatex engine; they mark documents using CJK or
// system fonts that pdflatex cannot handle.
var xelatexHints = []string{
	`\usepackage{kotex}`,
	`\usepackage[hangul]{kotex}`,
	`\usepackage{xeCJK}`,
	`\usepackage{fontspec}`,
	"XeLaTeX",
	"xelatex",
}

// DetectEngine picks the LaTeX engine for a document based on its preamble.
// Only the first few kilobytes are inspected; the default is pdflatex.
func DetectEngine(content []byte) string {
	head := string(content)
	if len(head) > engineSniffLen {
		head = head[:engineSniffLen]
	}

	for _, hint := range xelatexHints {
		if strings.Contains(head, hint) {
			return binXelatex
		}
	}
	lower := strings.ToLower(head)
	if strings.Contains(lower, "lualatex") || strings.Contains(lower, "luatex") {
		return binLualatex
	}
	return binPdflatex
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, dir, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Engine output is
// discarded; the engine writes its own .log next to the document.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}
