package render

import (
	"fmt"
	"strings"

	"github.com/terraform-ci-tools/prcomment/internal/domain/model"
)

// PlanInput carries everything the plan comment renderer needs.
type PlanInput struct {
	WorkingDir string
	Marker     string
	Counts     model.PlanCounts
	Details    string // Extracted plan body; ignored when HasDetails is false.
	HasDetails bool
	Footer     FooterInput
}

// PlanComment composes the full plan comment body: header with the hidden
// marker, counts summary, collapsible details with the code-fenced plan, and
// the marker repeated at the end for redundancy.
func PlanComment(in PlanInput) string {
	header := fmt.Sprintf("## 📦 Terraform Plan for `%s` %s", in.WorkingDir, in.Marker)
	summary := planSummary(in.Counts)
	details := planDetails(in.Details, in.HasDetails, planFooter(in.Footer))
	return fmt.Sprintf("%s\n\n%s\n%s\n%s\n", header, summary, details, in.Marker)
}

func planSummary(c model.PlanCounts) string {
	var b strings.Builder
	b.WriteString("### 🚀 Terraform Plan Summary\n")
	fmt.Fprintf(&b, "- ➕ (+) **Add**: `%s`\n", c.Add)
	fmt.Fprintf(&b, "- ♻️ (~) **Change**: `%s`\n", c.Change)
	fmt.Fprintf(&b, "- 🗑️ (-) **Destroy**: `%s`\n\n", c.Destroy)
	b.WriteString("✅ **Plan succeeded**\n")
	return b.String()
}

// planDetails renders the collapsible details block. The footer lives inside
// the block so readers see it after expanding, matching the summary-first
// layout of the comment.
func planDetails(body string, hasBody bool, footer string) string {
	var b strings.Builder
	b.WriteString("<details>\n<summary>📖 Details (Click me)</summary>\n\n")
	if hasBody {
		b.WriteString("```terraform\n")
		b.WriteString(body)
		b.WriteString("\n```\n\n")
	} else {
		b.WriteString("_Not available._\n\n")
	}
	b.WriteString(footer)
	b.WriteString("</details>\n")
	return b.String()
}
