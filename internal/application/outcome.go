// Package application hosts the upsert coordinators for the two comment
// pipelines. Each service runs once to completion, logs what it did, and
// reports an Outcome; it never crashes the CI job on remote failures.
package application

import (
	"context"
	"time"

	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
)

// Outcome reports what a pipeline run did, so callers can reason about the
// final state without re-deriving it from logs.
type Outcome int

const (
	// OutcomeSkipped means the run was not a PR context; nothing was done.
	OutcomeSkipped Outcome = iota
	// OutcomeCreated means a new comment was posted.
	OutcomeCreated
	// OutcomeUpdated means an existing marked comment was updated in place.
	OutcomeUpdated
	// OutcomeDeleted means delete mode ran; a missing comment still counts.
	OutcomeDeleted
	// OutcomeConfigError means a pre-flight configuration check failed
	// before any network action.
	OutcomeConfigError
	// OutcomeFailed means a remote call failed after PR resolution.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeConfigError:
		return "config-error"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// callTimeout bounds each individual forge call. No call is retried; a
// timeout surfaces as a logged failure and the pipeline moves on.
const callTimeout = 30 * time.Second

func callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// upsertComment locates the marked comment and updates it, creating a new
// one when no marker match exists. Running it twice with the same tokens
// leaves exactly one comment whose body is the second run's body.
func upsertComment(ctx context.Context, forge driven.ForgeComments, prNumber int, tokens []string, body string) (Outcome, int64, error) {
	id, found, err := findMarkedComment(ctx, forge, prNumber, tokens)
	if err != nil {
		return OutcomeFailed, 0, err
	}

	cctx, cancel := callContext(ctx)
	defer cancel()

	if found {
		if err := forge.UpdateIssueComment(cctx, id, body); err != nil {
			return OutcomeFailed, id, err
		}
		return OutcomeUpdated, id, nil
	}
	if err := forge.CreateIssueComment(cctx, prNumber, body); err != nil {
		return OutcomeFailed, 0, err
	}
	return OutcomeCreated, 0, nil
}
