// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiddy/lectern/pkg/types"
)

// Recorder persists per-document run outcomes. The history store implements
// it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) error
}

// BatchResult holds the outcome of a batch normalization run.
type BatchResult struct {
	Normalized int
	Skipped    int
	Failed     int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Normalized + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed normalization.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// NormalizeFile reads, normalizes, and rewrites a single document in place.
// With dryRun set the file is left alone. The returned status mirrors the
// per-file line written to w; detail carries the failure reason, if any.
func NormalizeFile(path, template string, rules []types.CourseRule, dryRun bool, w io.Writer) (types.RunStatus, string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:     %s (%v)\n", path, err)
		return types.StatusFailed, err.Error()
	}

	out, err := Normalize(types.Document{Path: path, Content: raw}, template, rules)
	if err != nil {
		fmt.Fprintf(w, "failed:     %s (%v)\n", path, err)
		return types.StatusFailed, err.Error()
	}

	if out == string(raw) {
		fmt.Fprintf(w, "unchanged:  %s\n", path)
		return types.StatusSkipped, "already normalized"
	}
	if dryRun {
		fmt.Fprintf(w, "would write: %s\n", path)
		return types.StatusSkipped, "dry run"
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		fmt.Fprintf(w, "failed:     %s (%v)\n", path, err)
		return types.StatusFailed, err.Error()
	}

	fmt.Fprintf(w, "normalized: %s\n", path)
	return types.StatusDone, ""
}

// Batch normalizes each document in turn, printing per-file status to w and
// returning a summary. A failing document never stops the run; its error is
// reported and the batch moves on. Outcomes are recorded through rec when
// it is non-nil.
func Batch(ctx context.Context, paths []string, template string, rules []types.CourseRule, dryRun bool, rec Recorder, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		started := time.Now()
		status, detail := NormalizeFile(path, template, rules, dryRun, w)

		switch status {
		case types.StatusDone:
			result.Normalized++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusFailed:
			result.Failed++
		}

		if rec != nil {
			course := ""
			if r, ok := ResolveCourse(path, rules); ok {
				course = r.Match
			}
			record := types.RunRecord{
				Stage:     types.StageNormalize,
				DocPath:   path,
				Course:    course,
				Status:    status,
				Detail:    detail,
				StartedAt: started,
				Duration:  time.Since(started),
			}
			if err := rec.Record(ctx, record); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording run for %s: %v\n", path, err)
			}
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d normalized, %d skipped, %d failed (total: %d)\n",
		result.Normalized, result.Skipped, result.Failed, result.Total())
	return result
}
