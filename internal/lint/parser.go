// Package lint parses tflint's human-readable output into structured issues.
package lint

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraform-ci-tools/prcomment/internal/domain/model"
)

// lineRE matches one issue line:
//
//	<file>:<line>:<col>: <LEVEL> - <message> (<rule>)
//
// with the trailing rule suffix being optional.
var lineRE = regexp.MustCompile(`^([^:\n]+):(\d+):(\d+):\s*([A-Za-z]+)\s*-\s*(.*?)(?:\s*\(([^)]+)\))?\s*$`)

// Result is the parsed form of one lint run.
type Result struct {
	// Files holds per-file issue groups, ordered case-insensitively by path.
	Files []model.FileIssues
	// Dropped counts non-blank lines that matched neither the issue pattern
	// nor a summary line. Dropped lines never fail the run and never change
	// the reported totals.
	Dropped int
}

// Parse turns raw lint output into issues grouped by file. Within each file
// issues are ordered by severity weight descending, then line, then column.
// Summary lines ("2 issue(s) found", "No issues found!") are filtered out so
// a rendered summary can never be re-parsed as an issue.
func Parse(text string) Result {
	byFile := make(map[string][]model.LintIssue)
	var res Result

	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if isSummaryLine(raw) {
			continue
		}
		m := lineRE.FindStringSubmatch(raw)
		if m == nil {
			res.Dropped++
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		file := strings.TrimSpace(m[1])
		byFile[file] = append(byFile[file], model.LintIssue{
			Line:    line,
			Col:     col,
			Level:   model.Severity(strings.ToLower(m[4])),
			Rule:    strings.TrimSpace(m[6]),
			Message: strings.TrimSpace(m[5]),
		})
	}

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})

	for _, p := range paths {
		issues := byFile[p]
		sort.SliceStable(issues, func(i, j int) bool {
			if w1, w2 := issues[i].Level.Weight(), issues[j].Level.Weight(); w1 != w2 {
				return w1 > w2
			}
			if issues[i].Line != issues[j].Line {
				return issues[i].Line < issues[j].Line
			}
			return issues[i].Col < issues[j].Col
		})
		res.Files = append(res.Files, model.FileIssues{Path: p, Issues: issues})
	}
	return res
}

// isSummaryLine reports whether the line is the tool's own tally line
// rather than an issue.
func isSummaryLine(line string) bool {
	low := strings.ToLower(line)
	return strings.Contains(low, "issue(s) found") || strings.Contains(low, "no issues")
}

// Totals sums issue counts across files, folding notice into info.
func Totals(files []model.FileIssues) model.SeverityTotals {
	var t model.SeverityTotals
	for _, f := range files {
		for _, it := range f.Issues {
			switch it.Level {
			case model.SeverityError:
				t.Errors++
			case model.SeverityWarning:
				t.Warnings++
			default:
				t.Info++
			}
		}
	}
	t.Total = t.Errors + t.Warnings + t.Info
	return t
}
