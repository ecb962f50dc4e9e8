// Package actions adapts the GitHub Actions runtime surface: the triggering
// event payload, workflow-command log annotations, and the step summary.
package actions

import (
	"encoding/json"
	"fmt"
	"os"
)

// IsPullRequestEvent reports whether the event name identifies a pull
// request trigger.
func IsPullRequestEvent(name string) bool {
	return name == "pull_request" || name == "pull_request_target"
}

// ResolvePRNumber reads the event payload at eventPath and returns the pull
// request number it names. ok is false when the payload carries no pull
// request context; err is set only for unreadable or malformed payloads, so
// callers can log a warning and fall through to other resolution strategies.
func ResolvePRNumber(eventPath string) (number int, ok bool, err error) {
	if eventPath == "" {
		return 0, false, nil
	}
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return 0, false, fmt.Errorf("reading event payload: %w", err)
	}

	var ev struct {
		Number      int             `json:"number"`
		PullRequest json.RawMessage `json:"pull_request"`
		Issue       struct {
			Number      int             `json:"number"`
			PullRequest json.RawMessage `json:"pull_request"`
		} `json:"issue"`
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return 0, false, fmt.Errorf("parsing event payload: %w", err)
	}

	// pull_request / pull_request_target: the number sits at top level next
	// to the pull_request object.
	if present(ev.PullRequest) && ev.Number > 0 {
		return ev.Number, true, nil
	}
	// issue_comment on a PR: the issue nests a pull_request stub.
	if present(ev.Issue.PullRequest) && ev.Issue.Number > 0 {
		return ev.Issue.Number, true, nil
	}
	return 0, false, nil
}

// present reports whether a raw JSON field was set to a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
