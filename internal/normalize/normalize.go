// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize rewrites LaTeX lecture notes onto the shared course
// template. It strips the document's own preamble, splices in the template,
// and inserts a generated metadata block while leaving the body untouched.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/lectern/pkg/types"
)

// BodyMarker is the literal that separates a document's preamble from its
// body. Everything before it is replaced; everything after it is preserved
// byte-for-byte.
const BodyMarker = `\begin{document}`

// metaEnv is the environment name of the generated metadata block. An
// existing block directly after the body marker is stripped before the new
// one is inserted, so re-normalizing a document is stable.
const metaEnv = "notesmeta"

// defaultPurpose is used when the matched course rule carries no purpose line.
const defaultPurpose = "Unified lecture notes on the shared course template."

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	// KindNoBodyMarker means the document contains no body marker and is
	// not well-formed for this transform.
	KindNoBodyMarker ErrorKind = "no_body_marker"

	// KindUnknownCourse means no course rule matched the document path and
	// no fallback rule exists.
	KindUnknownCourse ErrorKind = "unknown_course"
)

// ParseError reports why a single document could not be normalized. It is
// always local to one document; batch runs continue past it.
type ParseError struct {
	Kind ErrorKind
	Path string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindNoBodyMarker:
		return fmt.Sprintf("%s: no %s marker found", e.Path, BodyMarker)
	case KindUnknownCourse:
		return fmt.Sprintf("%s: path matches no known course and no fallback rule exists", e.Path)
	}
	return fmt.Sprintf("%s: parse error %s", e.Path, e.Kind)
}

// existingMetaRe matches a previously generated metadata block at the start
// of the body. It consumes exactly the bytes metaBlock emits, so stripping
// and regenerating leaves the rest of the body untouched.
var existingMetaRe = regexp.MustCompile(
	`^\n% Lecture metadata\n\\begin\{` + metaEnv + `\}(?s:.*?)\\end\{` + metaEnv + `\}\n`,
)

// Normalize rewrites a document onto the template. The returned text is
// template + body marker + metadata block + original body; the body is the
// exact byte range of doc.Content following the marker. The caller persists
// the result; Normalize itself touches no files.
func Normalize(doc types.Document, template string, rules []types.CourseRule) (string, error) {
	if template == "" {
		return "", fmt.Errorf("%s: empty template", doc.Path)
	}

	content := string(doc.Content)
	idx := strings.Index(content, BodyMarker)
	if idx < 0 {
		return "", &ParseError{Kind: KindNoBodyMarker, Path: doc.Path}
	}
	body := content[idx+len(BodyMarker):]
	body = existingMetaRe.ReplaceAllString(body, "")

	rule, ok := ResolveCourse(doc.Path, rules)
	if !ok {
		return "", &ParseError{Kind: KindUnknownCourse, Path: doc.Path}
	}

	meta := types.Metadata{
		CourseName:   rule.CourseName,
		LectureLabel: LectureLabel(doc.Path),
		Instructor:   rule.Instructor,
		Purpose:      rule.Purpose,
	}
	if meta.Purpose == "" {
		meta.Purpose = defaultPurpose
	}

	var b strings.Builder
	b.Grow(len(template) + len(BodyMarker) + len(body) + 256)
	b.WriteString(template)
	b.WriteString(BodyMarker)
	b.WriteString(metaBlock(meta))
	b.WriteString(body)
	return b.String(), nil
}

// metaBlock renders the metadata block inserted directly after the body
// marker. The layout is fixed; only the four field values vary.
func metaBlock(m types.Metadata) string {
	var b strings.Builder
	b.WriteString("\n% Lecture metadata\n")
	fmt.Fprintf(&b, "\\begin{%s}\n", metaEnv)
	fmt.Fprintf(&b, "\\textbf{Course:} %s \\\\\n", m.CourseName)
	fmt.Fprintf(&b, "\\textbf{Lecture:} %s \\\\\n", m.LectureLabel)
	fmt.Fprintf(&b, "\\textbf{Instructor:} %s \\\\\n", m.Instructor)
	fmt.Fprintf(&b, "\\textbf{Purpose:} %s\n", m.Purpose)
	fmt.Fprintf(&b, "\\end{%s}\n", metaEnv)
	return b.String()
}
