package driven

import "context"

// IssueComment is a PR-level comment as returned by the forge, reduced to
// the fields the upsert coordinators need.
type IssueComment struct {
	ID   int64
	Body string
}

// ForgeComments defines the driven port for the forge's issue-comment API.
// The single production implementation talks to GitHub; the port keeps the
// application services testable with in-memory fakes.
//
// Implementations are bound to one repository at construction time, since a
// pipeline run only ever touches the repository that triggered it.
type ForgeComments interface {
	// ListIssueComments returns every comment on the pull request in the
	// forge's default chronological order, fully drained across pages.
	ListIssueComments(ctx context.Context, prNumber int) ([]IssueComment, error)

	// CreateIssueComment posts a new comment on the pull request.
	CreateIssueComment(ctx context.Context, prNumber int, body string) error

	// UpdateIssueComment replaces the body of an existing comment in place.
	UpdateIssueComment(ctx context.Context, commentID int64, body string) error

	// DeleteIssueComment removes a comment. Deleting a comment that is
	// already gone is not an error.
	DeleteIssueComment(ctx context.Context, commentID int64) error

	// PullRequestsForCommit returns the numbers of pull requests associated
	// with the given commit SHA, in the forge's order.
	PullRequestsForCommit(ctx context.Context, sha string) ([]int, error)
}
