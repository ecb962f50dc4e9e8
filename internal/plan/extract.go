// Package plan extracts the rendered execution plan from captured tool output.
package plan

import (
	"os"
	"path/filepath"
	"strings"
)

// startPhrase marks the first line of the generated execution plan. Anything
// before it is provider/init noise and gets dropped.
const startPhrase = "Terraform used the selected providers to generate the following execution"

// detailsFile is the human-readable show output the plan step writes into
// the working directory. outputFile is the legacy fallback capture, which
// may still contain init noise.
const (
	detailsFile = "plan.txt"
	outputFile  = "output.txt"
)

// ExtractBody returns the text from the first line containing the plan start
// phrase onward, trimmed. When the phrase never appears the whole text is
// returned unchanged apart from trimming.
func ExtractBody(text string) string {
	lines := strings.Split(text, "\n")
	start := 0
	for i, l := range lines {
		if strings.Contains(l, startPhrase) {
			start = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

// ReadDetails returns the extracted plan body from the working directory's
// plan.txt, falling back to output.txt in the current directory. ok is false
// when neither file exists; the caller renders a placeholder instead.
func ReadDetails(workingDir string) (body string, ok bool) {
	for _, p := range []string{filepath.Join(workingDir, detailsFile), outputFile} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		return ExtractBody(decodePermissive(b)), true
	}
	return "", false
}

// decodePermissive converts raw bytes to a string, replacing invalid UTF-8
// sequences instead of failing. Plan output can contain arbitrary bytes from
// provider diagnostics.
func decodePermissive(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
