// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/lectern/pkg/types"
)

var testRules = []types.CourseRule{
	{Match: "csci103", CourseName: "CSCI E-103", Instructor: "Prof X"},
	{Match: "cs109", CourseName: "CS 109", Instructor: "Prof Y"},
	{Match: "cs109a", CourseName: "CS 109A", Instructor: "Prof Z"},
}

func doc(path, content string) types.Document {
	return types.Document{Path: path, Content: []byte(content)}
}

func TestNormalizeSplicesTemplateAndMetadata(t *testing.T) {
	input := `\documentclass{article}\usepackage{kotex}\begin{document}\section{Intro}Hello`
	out, err := Normalize(doc("school/harvard/csci103/lecture_08/8.tex", input), "TEMPLATE", testRules)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if !strings.HasPrefix(out, `TEMPLATE\begin{document}`) {
		t.Errorf("output does not start with template and body marker:\n%s", out)
	}
	if !strings.HasSuffix(out, `\section{Intro}Hello`) {
		t.Errorf("body not preserved verbatim:\n%s", out)
	}
	for _, want := range []string{"CSCI E-103", "Lecture 08", "Prof X"} {
		if !strings.Contains(out, want) {
			t.Errorf("metadata block missing %q", want)
		}
	}
	if strings.Contains(out, `\usepackage{kotex}`) {
		t.Errorf("old preamble not discarded")
	}
	if strings.Count(out, BodyMarker) != 1 {
		t.Errorf("body marker emitted %d times, want 1", strings.Count(out, BodyMarker))
	}
}

func TestNormalizeBodyPreservation(t *testing.T) {
	// The body must equal the exact bytes after the marker, including odd
	// whitespace and line endings.
	body := "\r\n\n  \\section{A}\ttext\r\nmore\n"
	input := `\old preamble` + BodyMarker + body

	out, err := Normalize(doc("x/cs109/3.tex", input), "T", testRules)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !strings.HasSuffix(out, body) {
		t.Errorf("body bytes changed:\ngot  %q\nwant suffix %q", out, body)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := `\documentclass{article}` + BodyMarker + "\n\\section{One}\nbody text\n"

	first, err := Normalize(doc("notes/csci103_04.tex", input), "TPL\n", testRules)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := Normalize(doc("notes/csci103_04.tex", first), "TPL\n", testRules)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if first != second {
		t.Errorf("re-normalization changed output:\nfirst  %q\nsecond %q", first, second)
	}
}

func TestNormalizeNoBodyMarker(t *testing.T) {
	_, err := Normalize(doc("a/cs109/1.tex", `\documentclass{article} no marker here`), "T", testRules)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Kind != KindNoBodyMarker {
		t.Errorf("kind = %s, want %s", pe.Kind, KindNoBodyMarker)
	}
}

func TestNormalizeUnknownCourse(t *testing.T) {
	input := BodyMarker + "body"

	_, err := Normalize(doc("a/phil201/1.tex", input), "T", testRules)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Kind != KindUnknownCourse {
		t.Errorf("kind = %s, want %s", pe.Kind, KindUnknownCourse)
	}

	// With a fallback rule present the same path succeeds, deterministically
	// using the fallback's values.
	withFallback := append([]types.CourseRule{}, testRules...)
	withFallback = append(withFallback, types.CourseRule{Match: "", CourseName: "General Notes", Instructor: "Staff"})
	out, err := Normalize(doc("a/phil201/1.tex", input), "T", withFallback)
	if err != nil {
		t.Fatalf("with fallback: %v", err)
	}
	if !strings.Contains(out, "General Notes") || !strings.Contains(out, "Staff") {
		t.Errorf("fallback values not used:\n%s", out)
	}
}

func TestNormalizeEmptyTemplate(t *testing.T) {
	if _, err := Normalize(doc("a/cs109/1.tex", BodyMarker+"b"), "", testRules); err == nil {
		t.Error("empty template accepted")
	}
}

func TestNormalizeConcreteScenario(t *testing.T) {
	input := `\preamble...\begin{document}\section{Intro}Hello`
	rules := []types.CourseRule{{Match: "csci103", CourseName: "CSCI E-103", Instructor: "Prof X"}}

	out, err := Normalize(doc("school/harvard/csci103/lecture_08/8.tex", input), "TEMPLATE", rules)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	marker := strings.Index(out, BodyMarker)
	if out[:marker] != "TEMPLATE" {
		t.Errorf("prefix = %q, want TEMPLATE", out[:marker])
	}
	between := out[marker+len(BodyMarker) : len(out)-len(`\section{Intro}Hello`)]
	for _, want := range []string{"CSCI E-103", "Lecture 08", "Prof X"} {
		if !strings.Contains(between, want) {
			t.Errorf("metadata block %q missing %q", between, want)
		}
	}
}
