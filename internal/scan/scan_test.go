package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanContentWeights(t *testing.T) {
	content := strings.Join([]string{
		`\adjustbox{max width=\textwidth}{...}`, // 10
		`\resizebox{\textwidth}{!}{...}`,        // 8
		`{\tiny some text}`,                     // 5
		`{\footnotesize note}`,                  // 2
		`{\small aside}`,                        // 1
		`\lstset{basicstyle=\small\ttfamily}`,   // excluded
		`\begin{tabularx}{\textwidth}{lX}`,      // counted, weight 0
	}, "\n")

	r := ScanContent("x.tex", content)
	if r.Score != 26 {
		t.Errorf("score = %d, want 26", r.Score)
	}
	if r.Level != RiskHigh {
		t.Errorf("level = %s, want HIGH", r.Level)
	}
	if r.Count("small") != 1 {
		t.Errorf("basicstyle line must not count as \\small (got %d)", r.Count("small"))
	}
	if r.Count("tabularx") != 1 {
		t.Errorf("tabularx not counted")
	}
	if r.Findings[0].Line != 1 {
		t.Errorf("first finding at line %d, want 1", r.Findings[0].Line)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskMinimal}, {4, RiskMinimal},
		{5, RiskLow}, {9, RiskLow},
		{10, RiskMedium}, {19, RiskMedium},
		{20, RiskHigh}, {80, RiskHigh},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScanAllSortsByScore(t *testing.T) {
	dir := t.TempDir()
	low := filepath.Join(dir, "low.tex")
	high := filepath.Join(dir, "high.tex")
	os.WriteFile(low, []byte(`{\small x}`), 0o644)
	os.WriteFile(high, []byte(`\resizebox{a}{b}{c}`+"\n"+`{\tiny y}`+"\n"+`{\scriptsize z}`), 0o644)

	reports, errs := ScanAll([]string{low, high, filepath.Join(dir, "missing.tex")})
	if len(errs) != 1 {
		t.Fatalf("want 1 error for missing file, got %v", errs)
	}
	if len(reports) != 2 || reports[0].Path != high || reports[1].Path != low {
		t.Errorf("reports not sorted by score: %+v", reports)
	}
}

func TestParseLog(t *testing.T) {
	log := `
Overfull \hbox (15.3pt too wide) in paragraph at lines 120--121
Overfull \hbox (4.0pt too wide) in paragraph at lines 300--301
Overfull \vbox (22.5pt too high) detected at line 98
`
	rep := parseLog(log)
	if rep.HboxCount != 2 || rep.VboxCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", rep.HboxCount, rep.VboxCount)
	}
	if rep.MaxHbox != 15.3 || rep.MaxVbox != 22.5 {
		t.Errorf("maxima = %.1f/%.1f, want 15.3/22.5", rep.MaxHbox, rep.MaxVbox)
	}
	if !rep.HasOverflow() {
		t.Error("HasOverflow = false")
	}
	if parseLog("clean run").HasOverflow() {
		t.Error("clean log reports overflow")
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []FileReport{
		{Path: "a.tex", Score: 25, Level: RiskHigh},
		{Path: "b.tex", Score: 1, Level: RiskMinimal},
	})
	out := buf.String()
	for _, want := range []string{"a.tex", "HIGH", "b.tex", "MINIMAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
