package types

import "time"

// NormalizeConfig holds settings for the normalization stage.
type NormalizeConfig struct {
	// TemplatePath is the shared preamble template file.
	TemplatePath string `json:"template_path" yaml:"template_path"`

	// RulesPath is an optional course-rule file; when empty the rules come
	// from the main config file's courses key.
	RulesPath string `json:"rules_path,omitempty" yaml:"rules_path,omitempty"`

	// DryRun reports what would change without writing any file.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// CompileConfig holds settings for the compilation stage.
type CompileConfig struct {
	// Runs is the number of engine passes per document (default 2; the
	// second pass resolves the table of contents and forward references).
	Runs int `json:"runs" yaml:"runs"`

	// Timeout bounds a single engine pass (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// OutputDir is where finished PDFs are copied. Empty leaves the PDF
	// next to its source.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// KeepAux skips the post-compile cleanup of auxiliary files.
	KeepAux bool `json:"keep_aux" yaml:"keep_aux"`

	// Rename derives output PDF names from the document path
	// (university_course_NN.pdf) instead of the source file name.
	Rename bool `json:"rename" yaml:"rename"`
}

// ScanConfig holds settings for the font-risk scanner.
type ScanConfig struct {
	// CheckLogs also inspects compile logs next to each document for
	// overfull box warnings.
	CheckLogs bool `json:"check_logs" yaml:"check_logs"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the base directory for history data (contains index/).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ToolchainConfig groups all stage configurations.
type ToolchainConfig struct {
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize"`
	Compile   CompileConfig   `json:"compile" yaml:"compile"`
	Scan      ScanConfig      `json:"scan" yaml:"scan"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Courses   []CourseRule    `json:"courses" yaml:"courses"`
}
