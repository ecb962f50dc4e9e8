package render

import (
	"fmt"
	"strings"
)

// FooterInput carries the run metadata shown at the bottom of a comment.
type FooterInput struct {
	Actor      string
	EventName  string
	WorkingDir string
	Workflow   string
	RunURL     string
	CommitSHA  string // Optional; enables the commit link in the plan footer.
	CommitURL  string
}

// planFooter renders the compact footer used by the plan comment. The commit
// link is appended only when the triggering SHA is known.
func planFooter(in FooterInput) string {
	var b strings.Builder
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "🧑‍💻 **Actor**: @%s\n", in.Actor)
	fmt.Fprintf(&b, "📂 **Dir**: `%s`\n", in.WorkingDir)
	fmt.Fprintf(&b, "🔗 **Run**: [logs](%s)\n", in.RunURL)
	if in.CommitSHA != "" {
		short := in.CommitSHA
		if len(short) > 7 {
			short = short[:7]
		}
		fmt.Fprintf(&b, "🔧 **Commit**: [%s](%s)\n", short, in.CommitURL)
	}
	return b.String()
}

// lintFooter renders the wider footer used by the lint comment.
func lintFooter(in FooterInput) string {
	var b strings.Builder
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "🧑‍💻 **Actor**: @%s\n", in.Actor)
	fmt.Fprintf(&b, "⚙️ **Event**: %s\n", in.EventName)
	fmt.Fprintf(&b, "📂 **Working Dir**: `%s`\n", in.WorkingDir)
	fmt.Fprintf(&b, "🏗️ **Workflow**: %s\n", in.Workflow)
	fmt.Fprintf(&b, "🔗 **Run Logs**: [View here](%s)\n", in.RunURL)
	return b.String()
}
