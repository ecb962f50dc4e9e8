package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/terraform-ci-tools/prcomment/internal/domain/model"
)

// maxDetailRows caps the data rows rendered across all per-file tables.
// GitHub truncates very large comment bodies; past this point the run log
// is the better place to read results.
const maxDetailRows = 500

// cellPolicy strips any markup that survives entity escaping before tool
// output is embedded in the details table.
var cellPolicy = bluemonday.StrictPolicy()

// LintInput carries everything the lint comment renderer needs.
type LintInput struct {
	WorkingDir string
	Marker     string
	Files      []model.FileIssues
	Totals     model.SeverityTotals
	RunURL     string
	BlobBase   string // Base URL for line links ("<server>/.../blob/<sha>"); empty disables links.
	Footer     FooterInput
}

// LintComment composes the full lint comment body: header with status phrase
// and hidden marker, totals summary, reading help, collapsible per-file
// detail tables, footer, and the marker repeated at the end.
func LintComment(in LintInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 🧹 TFLint for `%s` — %s %s\n\n", in.WorkingDir, statusPhrase(in.Totals), in.Marker)
	b.WriteString(lintSummary(in.Totals))
	b.WriteString("\n")
	b.WriteString(lintHelp())
	b.WriteString(lintDetails(in.Files, in.RunURL, in.BlobBase))
	fmt.Fprintf(&b, "\n🔗 [View run logs & artifacts](%s)\n", in.RunURL)
	b.WriteString(lintFooter(in.Footer))
	b.WriteString("\n")
	b.WriteString(in.Marker)
	b.WriteString("\n")
	return b.String()
}

// statusPhrase builds the short header status: error and warning counts when
// present, a bare info count when that is all there is, else "no issues".
func statusPhrase(t model.SeverityTotals) string {
	var parts []string
	if t.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d ❌ error%s", t.Errors, plural(t.Errors)))
	}
	if t.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d ⚠️ warning%s", t.Warnings, plural(t.Warnings)))
	}
	if len(parts) == 0 && t.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d ℹ️ info", t.Info))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func lintSummary(t model.SeverityTotals) string {
	var b strings.Builder
	b.WriteString("### 🧹 TFLint Summary\n")
	fmt.Fprintf(&b, "- ❌ **Errors**: `%d`\n", t.Errors)
	fmt.Fprintf(&b, "- ⚠️ **Warnings**: `%d`\n", t.Warnings)
	fmt.Fprintf(&b, "- ℹ️ **Info**: `%d`\n", t.Info)
	fmt.Fprintf(&b, "- 📦 **Total**: `%d`\n\n", t.Total)
	b.WriteString("_Legend: ❌ error · ⚠️ warning · ℹ️ info_\n\n")
	b.WriteString("✅ **Lint check succeeded**\n")
	return b.String()
}

func lintHelp() string {
	return "_How to read_: **Errors** block merges, **Warnings** need attention, **Info** is advisory.\n" +
		"_Fix locally_: run `tflint --init && tflint` in this folder.\n\n" +
		"---\n"
}

// lintDetails renders the outer details block with one collapsible table per
// file. Rows are capped at maxDetailRows across all files; once the cap is
// hit a truncation notice replaces the remainder and every open tag is still
// closed.
func lintDetails(files []model.FileIssues, runURL, blobBase string) string {
	var parts []string
	parts = append(parts, "<details>", "<summary>📖 Details (Click me)</summary>", "")

	if len(files) == 0 {
		parts = append(parts, "_No issues to display._", "", "</details>", "")
		return strings.Join(parts, "\n")
	}

	rows := 0
	truncated := false
	for _, f := range files {
		if rows >= maxDetailRows {
			truncated = true
			break
		}
		parts = append(parts, fmt.Sprintf(
			"\n<details><summary>📄 <code>%s</code> — <strong>%d</strong> issue(s)</summary>\n",
			escapeCell(f.Path), len(f.Issues)))
		parts = append(parts,
			"<table>"+
				"<thead><tr>"+
				"<th align='right'>Line</th>"+
				"<th align='right'>Col</th>"+
				"<th align='left'>Level</th>"+
				"<th align='left'>Rule</th>"+
				"<th align='left'>Message</th>"+
				"</tr></thead><tbody>")
		for _, it := range f.Issues {
			if rows >= maxDetailRows {
				truncated = true
				break
			}
			parts = append(parts, issueRow(f.Path, it, blobBase))
			rows++
		}
		parts = append(parts, "</tbody></table>\n</details>\n")
		if truncated {
			break
		}
	}
	if truncated {
		parts = append(parts, fmt.Sprintf(
			"<p>⏳ Output truncated to %d rows for readability. See full details in the Actions tab: %s</p>",
			maxDetailRows, runURL))
	}
	parts = append(parts, "", "</details>", "")
	return strings.Join(parts, "\n")
}

func issueRow(path string, it model.LintIssue, blobBase string) string {
	lineCell := fmt.Sprintf("%d", it.Line)
	if blobBase != "" {
		// The path lands inside a quoted attribute, so it needs the same
		// escaping as the visible cells.
		lineCell = fmt.Sprintf("<a href='%s/%s#L%d'>%d</a>", blobBase, escapeCell(path), it.Line, it.Line)
	}
	rule := ""
	if it.Rule != "" {
		rule = escapeCell(it.Rule)
	}
	return "<tr>" +
		fmt.Sprintf("<td align='right'>%s</td>", lineCell) +
		fmt.Sprintf("<td align='right'>%d</td>", it.Col) +
		fmt.Sprintf("<td>%s <strong>%s</strong></td>", it.Level.Emoji(), escapeCell(it.Level.Title())) +
		fmt.Sprintf("<td><code>%s</code></td>", rule) +
		fmt.Sprintf("<td>%s</td>", escapeCell(it.Message)) +
		"</tr>"
}

// escapeCell makes untrusted tool output safe to embed in the HTML table:
// entities are escaped, then any markup that would still parse is stripped.
func escapeCell(s string) string {
	return cellPolicy.Sanitize(html.EscapeString(s))
}
