package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ForgeComments = (*Client)(nil)

// ListIssueComments retrieves all PR-level comments (from the Issues API)
// for a pull request. It drains every page before returning, so a marker
// match on a late page is never missed, and preserves the API's default
// chronological order.
func (c *Client) ListIssueComments(ctx context.Context, prNumber int) ([]driven.IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var all []driven.IssueComment

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments for %s/%s#%d (page %d): %w", c.owner, c.repo, prNumber, opts.Page, err)
		}

		logRateLimit(resp, fmt.Sprintf("%s/%s#%d/comments", c.owner, c.repo, prNumber), opts.Page, len(comments))

		for _, comment := range comments {
			all = append(all, driven.IssueComment{
				ID:   comment.GetID(),
				Body: comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateIssueComment creates a top-level comment on the pull request.
func (c *Client) CreateIssueComment(ctx context.Context, prNumber int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating comment on %s/%s#%d: %w", c.owner, c.repo, prNumber, err)
	}
	return nil
}

// UpdateIssueComment replaces the body of an existing comment in place.
func (c *Client) UpdateIssueComment(ctx context.Context, commentID int64, body string) error {
	_, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("updating comment %d on %s/%s: %w", commentID, c.owner, c.repo, err)
	}
	return nil
}

// DeleteIssueComment removes a comment. A 404 means the comment is already
// gone and counts as success.
func (c *Client) DeleteIssueComment(ctx context.Context, commentID int64) error {
	resp, err := c.gh.Issues.DeleteComment(ctx, c.owner, c.repo, commentID)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("deleting comment %d on %s/%s: %w", commentID, c.owner, c.repo, err)
	}
	return nil
}

// PullRequestsForCommit returns the numbers of pull requests associated with
// the given commit SHA, in the API's order.
func (c *Client) PullRequestsForCommit(ctx context.Context, sha string) ([]int, error) {
	opts := &gh.ListOptions{PerPage: 100}
	prs, resp, err := c.gh.PullRequests.ListPullRequestsWithCommit(ctx, c.owner, c.repo, sha, opts)
	if err != nil {
		return nil, fmt.Errorf("listing pull requests for commit %s on %s/%s: %w", sha, c.owner, c.repo, err)
	}

	logRateLimit(resp, fmt.Sprintf("%s/%s@%s/pulls", c.owner, c.repo, sha), 0, len(prs))

	numbers := make([]int, 0, len(prs))
	for _, pr := range prs {
		numbers = append(numbers, pr.GetNumber())
	}
	return numbers, nil
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
