// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lectern/pkg/types"
)

// placeholderLabel is used when no lecture number can be read from the path.
const placeholderLabel = "Lecture ??"

// ResolveCourse picks the course rule for a document path. The rule whose
// Match is the longest substring of the path wins; between equal-length
// matches the earlier rule wins. A rule with an empty Match is the fallback
// and is chosen only when nothing else matches. The second return is false
// when no rule applies at all.
func ResolveCourse(path string, rules []types.CourseRule) (types.CourseRule, bool) {
	best := -1
	bestLen := -1
	for i, r := range rules {
		if r.Match != "" && !strings.Contains(path, r.Match) {
			continue
		}
		// The fallback's empty Match has length zero, so any real match
		// outranks it.
		if len(r.Match) > bestLen {
			best = i
			bestLen = len(r.Match)
		}
	}
	if best < 0 {
		return types.CourseRule{}, false
	}
	return rules[best], true
}

var (
	lectureDirRe  = regexp.MustCompile(`(?:^|[/\\])lecture_(\d+)(?:[/\\]|$)`)
	courseStemRe  = regexp.MustCompile(`^[a-z]+[\d-]*_(\d+)$`)
	firstNumberRe = regexp.MustCompile(`\d+`)
)

// LectureNumber extracts the lecture ordinal from a document path. It tries,
// in order: a lecture_NN directory segment, a course_NN file stem, and the
// first digit run in the stem. The second return is false when the path
// carries no number.
func LectureNumber(path string) (int, bool) {
	if m := lectureDirRe.FindStringSubmatch(path); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	stem := path
	if i := strings.LastIndexAny(stem, `/\`); i >= 0 {
		stem = stem[i+1:]
	}
	if i := strings.LastIndex(stem, "."); i >= 0 {
		stem = stem[:i]
	}

	if m := courseStemRe.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := firstNumberRe.FindString(stem); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

// LectureLabel renders the lecture label for a path, zero-padding the number
// to two digits. Paths with no detectable number get a placeholder; that is
// never an error.
func LectureLabel(path string) string {
	n, ok := LectureNumber(path)
	if !ok {
		return placeholderLabel
	}
	return fmt.Sprintf("Lecture %02d", n)
}

// rulesFile is the on-disk shape of a course-rule file.
type rulesFile struct {
	Courses []types.CourseRule `yaml:"courses"`
}

// LoadRules reads an ordered course-rule list from a YAML file. Rule order
// is preserved; it is the documented tie-break for equal-length matches.
func LoadRules(path string) ([]types.CourseRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if len(rf.Courses) == 0 {
		return nil, fmt.Errorf("rules file %s defines no courses", path)
	}
	for i, r := range rf.Courses {
		if r.CourseName == "" {
			return nil, fmt.Errorf("rules file %s: course %d has no course_name", path, i)
		}
	}
	return rf.Courses, nil
}
