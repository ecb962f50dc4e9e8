package application

import (
	"context"
	"strings"

	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
)

// findMarkedComment scans the PR's issue comments for the first body that
// contains any of the marker tokens, in listing order. Tokens are tried
// per comment so an older comment matching a weaker token still wins over
// a newer one matching a stronger token; listing order is what pins the
// target across reruns.
func findMarkedComment(ctx context.Context, forge driven.ForgeComments, prNumber int, tokens []string) (int64, bool, error) {
	cctx, cancel := callContext(ctx)
	defer cancel()

	comments, err := forge.ListIssueComments(cctx, prNumber)
	if err != nil {
		return 0, false, err
	}
	for _, c := range comments {
		for _, tok := range tokens {
			if tok != "" && strings.Contains(c.Body, tok) {
				return c.ID, true, nil
			}
		}
	}
	return 0, false, nil
}
