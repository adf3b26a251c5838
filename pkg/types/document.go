// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lectern toolchain:
// source documents, course rules, derived metadata, run records, and the
// per-stage configuration structs.
package types

import "time"

// Document is a LaTeX source file read once from disk. The content is never
// mutated; every transform produces a new value.
type Document struct {
	// Path is the filesystem location the document was read from.
	Path string

	// Content is the raw file content, byte-for-byte.
	Content []byte
}

// Metadata is the derived record inserted at the top of a normalized
// document's body. It is transient: computed per transform, never stored.
type Metadata struct {
	// CourseName is the display name of the course (e.g. "CSCI E-103: Introduction to Data Engineering").
	CourseName string `json:"course_name" yaml:"course_name"`

	// LectureLabel identifies the lecture within the course (e.g. "Lecture 08").
	LectureLabel string `json:"lecture_label" yaml:"lecture_label"`

	// Instructor is the instructor display name, possibly several names.
	Instructor string `json:"instructor" yaml:"instructor"`

	// Purpose is a one-line description of what the notes are for.
	Purpose string `json:"purpose" yaml:"purpose"`
}

// CourseRule maps a course identifier substring to course metadata. Rules are
// kept as an ordered list: when two rules match a path with equal specificity,
// the earlier rule wins. A rule with an empty Match is the generic fallback,
// used only when no other rule matches.
type CourseRule struct {
	// Match is the substring looked for in the document path (e.g. "csci103").
	// Empty marks the fallback rule.
	Match string `json:"match" yaml:"match" mapstructure:"match"`

	// CourseName is the display name substituted into the metadata block.
	CourseName string `json:"course_name" yaml:"course_name" mapstructure:"course_name"`

	// Instructor is the instructor display name for the course.
	Instructor string `json:"instructor" yaml:"instructor" mapstructure:"instructor"`

	// Purpose optionally overrides the default purpose line.
	Purpose string `json:"purpose,omitempty" yaml:"purpose,omitempty" mapstructure:"purpose"`
}

// RunStatus is the per-document outcome of a batch stage.
type RunStatus string

const (
	StatusDone    RunStatus = "done"
	StatusSkipped RunStatus = "skipped"
	StatusFailed  RunStatus = "failed"
)

// Stage identifies which toolchain stage produced a run record.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageCompile   Stage = "compile"
	StageValidate  Stage = "validate"
)

// RunRecord is one document's outcome in a batch run, persisted by the
// history store.
type RunRecord struct {
	// Stage names the toolchain stage: normalize, compile, or validate.
	Stage Stage `json:"stage" yaml:"stage"`

	// DocPath is the source document the record refers to.
	DocPath string `json:"doc_path" yaml:"doc_path"`

	// Course is the matched course identifier, if any.
	Course string `json:"course,omitempty" yaml:"course,omitempty"`

	// Status is the per-document outcome.
	Status RunStatus `json:"status" yaml:"status"`

	// Detail carries the failure reason or a short success note.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// StartedAt is when processing of this document began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is how long processing took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
