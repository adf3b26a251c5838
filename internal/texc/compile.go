// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/lectern/internal/normalize"
	"github.com/pdiddy/lectern/pkg/types"
)

const (
	defaultRuns    = 2
	defaultTimeout = 120 * time.Second
)

// auxExtensions are the engine by-products removed after a successful run.
var auxExtensions = []string{
	".aux", ".log", ".out", ".toc", ".lof", ".lot",
	".fls", ".fdb_latexmk", ".synctex.gz", ".xdv",
}

// Compiler invokes the LaTeX engine on documents. It is safe to reuse across
// documents; each Compile call is independent.
type Compiler struct {
	cfg   types.CompileConfig
	rules []types.CourseRule
	exec  executor
}

// NewCompiler builds a compiler from config. The rules are used only for
// output renaming; they may be nil when cfg.Rename is off.
func NewCompiler(cfg types.CompileConfig, rules []types.CourseRule) *Compiler {
	if cfg.Runs <= 0 {
		cfg.Runs = defaultRuns
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Compiler{cfg: cfg, rules: rules, exec: defaultExec}
}

// Compile runs the engine on one document and returns the path of the
// finished PDF. The engine runs cfg.Runs times so the table of contents and
// forward references resolve; a non-zero engine exit is tolerated as long as
// the PDF materializes, since LaTeX reports recoverable errors that way.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	content, err := os.ReadFile(texPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", texPath, err)
	}

	engine := DetectEngine(content)
	if _, err := c.exec.LookPath(engine); err != nil {
		return "", fmt.Errorf("engine %s not found on PATH: %w", engine, err)
	}

	dir := filepath.Dir(texPath)
	name := filepath.Base(texPath)
	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"

	var lastErr error
	for i := 0; i < c.cfg.Runs; i++ {
		runCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		lastErr = c.exec.Run(runCtx, dir, engine, "-interaction=nonstopmode", name)
		timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded)
		cancel()
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if timedOut {
			return "", fmt.Errorf("compiling %s: pass %d timed out after %v", texPath, i+1, c.cfg.Timeout)
		}
	}

	if _, err := os.Stat(pdfPath); err != nil {
		if lastErr != nil {
			return "", fmt.Errorf("compiling %s with %s: no PDF produced: %w", texPath, engine, lastErr)
		}
		return "", fmt.Errorf("compiling %s with %s: no PDF produced", texPath, engine)
	}

	if !c.cfg.KeepAux {
		cleanupAux(texPath)
	}

	if c.cfg.OutputDir != "" {
		out := filepath.Join(c.cfg.OutputDir, c.outputName(texPath))
		if err := copyFile(pdfPath, out); err != nil {
			return "", fmt.Errorf("copying PDF to output: %w", err)
		}
		return out, nil
	}
	return pdfPath, nil
}

// outputName derives the PDF file name placed in the output directory. With
// renaming on, the path's university and course segments plus the lecture
// number give university_course_NN.pdf; otherwise the source name is kept.
func (c *Compiler) outputName(texPath string) string {
	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath)) + ".pdf"
	if !c.cfg.Rename {
		return base
	}

	rule, ok := normalize.ResolveCourse(texPath, c.rules)
	if !ok || rule.Match == "" {
		return base
	}

	course := rule.Match
	university := ""
	parts := strings.Split(filepath.ToSlash(texPath), "/")
	for i, part := range parts {
		if strings.Contains(part, course) && i > 0 {
			university = parts[i-1]
			break
		}
	}

	n, okNum := normalize.LectureNumber(texPath)
	if !okNum {
		return base
	}
	if university == "" {
		return fmt.Sprintf("%s_%02d.pdf", course, n)
	}
	return fmt.Sprintf("%s_%s_%02d.pdf", university, course, n)
}

// cleanupAux removes engine by-products next to the document. Missing files
// are fine.
func cleanupAux(texPath string) {
	stem := strings.TrimSuffix(texPath, filepath.Ext(texPath))
	for _, ext := range auxExtensions {
		os.Remove(stem + ext)
	}
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// BatchResult holds the outcome of a batch compile run.
type BatchResult struct {
	Compiled int
	Failed   int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Compiled + r.Failed
}

// HasFailures reports whether any document failed to compile.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// CompileBatch compiles each document in turn, printing per-file status to w
// and returning a summary. One failing document never stops the run.
// Outcomes are recorded through rec when it is non-nil.
func CompileBatch(ctx context.Context, c *Compiler, paths []string, rec normalize.Recorder, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		started := time.Now()
		pdf, err := c.Compile(ctx, path)

		status := types.StatusDone
		detail := ""
		if err != nil {
			status = types.StatusFailed
			detail = err.Error()
			result.Failed++
			fmt.Fprintf(w, "failed:   %s (%v)\n", path, err)
		} else {
			result.Compiled++
			fmt.Fprintf(w, "compiled: %s -> %s\n", path, pdf)
		}

		if rec != nil {
			course := ""
			if r, ok := normalize.ResolveCourse(path, c.rules); ok {
				course = r.Match
			}
			record := types.RunRecord{
				Stage:     types.StageCompile,
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

		if ctx.Err() != nil {
			break
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d compiled, %d failed (total: %d)\n",
		result.Compiled, result.Failed, result.Total())
	return result
}
