// Package render builds the markdown/HTML bodies of the pull request
// comments. Rendering is deterministic: the same inputs always produce the
// same body, so an unchanged run updates a comment to identical content.
package render

import (
	"fmt"
	"strings"
)

// PlanMarker returns the hidden HTML token identifying the plan comment for
// one working directory. A caller-provided override is honored only when it
// already is a complete HTML comment; anything else falls back to the
// synthesized token so the marker can never collide with visible text.
func PlanMarker(override, workingDir string) string {
	override = strings.TrimSpace(override)
	if strings.HasPrefix(override, "<!--") && strings.HasSuffix(override, "-->") {
		return override
	}
	return fmt.Sprintf("<!-- tf-plan:%s -->", workingDir)
}

// LintMarker returns the hidden HTML token identifying the lint comment for
// the given key (the working directory label).
func LintMarker(key string) string {
	return fmt.Sprintf("<!-- tflint:%s -->", key)
}
