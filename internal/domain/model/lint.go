package model

import "strings"

// Severity is a normalized lint severity level as reported by the lint tool.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNotice  Severity = "notice"
	SeverityInfo    Severity = "info"
)

// Weight returns the ranking used to order issues within a file.
// Higher weights sort first. Unknown severities rank below info.
func (s Severity) Weight() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityNotice, SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Emoji returns the symbol shown next to the severity in rendered comments.
func (s Severity) Emoji() string {
	switch s {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Title returns the severity capitalized for display ("Warning").
func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// LintIssue is one structured finding parsed from a line of lint output.
type LintIssue struct {
	Line    int
	Col     int
	Level   Severity
	Rule    string // Optional; empty when the line carried no rule suffix.
	Message string
}

// FileIssues groups the issues reported against a single file.
type FileIssues struct {
	Path   string
	Issues []LintIssue
}

// SeverityTotals aggregates issue counts for the summary block.
// Notice is folded into Info; Total is the post-fold sum.
type SeverityTotals struct {
	Errors   int
	Warnings int
	Info     int
	Total    int
}
