// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodDoc = `\documentclass{article}
\usepackage{graphicx}
\begin{document}
\section{Intro}
Body text.
\end{document}`

func TestCheckCleanDocument(t *testing.T) {
	assert.Empty(t, Check(goodDoc))
}

func TestCheckNoBodyMarker(t *testing.T) {
	issues := Check(`\documentclass{article} only preamble`)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueNoBodyMarker, issues[0].Kind)
}

func TestCheckFindsBodyIssues(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\maketitle
\usepackage{tabularx}
% \usepackage{commented-out-is-fine}
Body.
\end{document}`

	issues := Check(doc)
	require.Len(t, issues, 2)
	assert.Equal(t, IssueStrayMaketitle, issues[0].Kind)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, IssuePreambleInBody, issues[1].Kind)
	assert.Equal(t, 4, issues[1].Line)
}

func TestCheckIgnoresPreambleBeforeMarker(t *testing.T) {
	doc := `\usepackage{kotex}
\definecolor{notesblue}{RGB}{30,60,120}
\begin{document}
Body.
\end{document}`
	assert.Empty(t, Check(doc))
}

func TestCheckMarkerLineTail(t *testing.T) {
	// Body text sharing the marker's line is still body text.
	doc := `\documentclass{article}
\begin{document} \usepackage{tabularx}
Body.
\end{document}`

	issues := Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, IssuePreambleInBody, issues[0].Kind)
	assert.Equal(t, 2, issues[0].Line)
}

func TestFixMarkerLineTailKeepsMarker(t *testing.T) {
	doc := `\documentclass{article}
\begin{document} \usepackage{tabularx}
Body.
\end{document}`

	fixed, issues := Fix(doc)
	require.Len(t, issues, 1)
	assert.Contains(t, fixed, `\begin{document} % \usepackage{tabularx}`)
	assert.Empty(t, Check(fixed))
}

func TestFix(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\maketitle
\usepackage{tabularx}
Body.
\end{document}`

	fixed, issues := Fix(doc)
	require.Len(t, issues, 2)
	assert.NotContains(t, fixed, "\\maketitle")
	assert.Contains(t, fixed, "% \\usepackage{tabularx}")
	assert.Contains(t, fixed, "Body.")

	// A clean document is returned unchanged.
	same, none := Fix(goodDoc)
	assert.Equal(t, goodDoc, same)
	assert.Empty(t, none)

	// No body marker: nothing to fix.
	noMarker := `\documentclass{article}`
	same, none = Fix(noMarker)
	assert.Equal(t, noMarker, same)
	assert.Empty(t, none)
}

func TestFileFixCannotRepairMissingMarker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.tex")
	require.NoError(t, os.WriteFile(path, []byte(`\documentclass{article} no body`), 0o644))

	var out bytes.Buffer
	issues, err := File(path, true, &out)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueNoBodyMarker, issues[0].Kind)
	assert.True(t, strings.HasPrefix(out.String(), "issues:"), out.String())

	// The file is untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{article} no body`, string(data))
}

func TestFileFixInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tex")
	doc := "\\begin{document}\n\\maketitle\nBody.\n\\end{document}"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var out bytes.Buffer
	issues, err := File(path, true, &out)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\\maketitle")
	assert.True(t, strings.HasPrefix(out.String(), "fixed:"), out.String())

	// Second pass is clean.
	out.Reset()
	issues, err = File(path, true, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.True(t, strings.HasPrefix(out.String(), "ok:"), out.String())
}
