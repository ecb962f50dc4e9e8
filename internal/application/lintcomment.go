package application

import (
	"context"
	"log/slog"

	"github.com/terraform-ci-tools/prcomment/internal/adapter/driven/actions"
	"github.com/terraform-ci-tools/prcomment/internal/config"
	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
	"github.com/terraform-ci-tools/prcomment/internal/lint"
	"github.com/terraform-ci-tools/prcomment/internal/render"
)

// LintCommentService posts, updates, or deletes the TFLint comment on the
// pull request associated with the current workflow run.
type LintCommentService struct {
	cfg   *config.Config
	forge driven.ForgeComments
	log   *slog.Logger
}

// NewLintCommentService wires the lint pipeline.
func NewLintCommentService(cfg *config.Config, forge driven.ForgeComments, log *slog.Logger) *LintCommentService {
	return &LintCommentService{cfg: cfg, forge: forge, log: log}
}

// Run executes the lint pipeline once. The lint pipeline always talks to
// the API, so on pull request events a missing token is a configuration
// error before any network call.
func (s *LintCommentService) Run(ctx context.Context) Outcome {
	if !actions.IsPullRequestEvent(s.cfg.EventName) {
		s.log.Info("not a pull request event, skipping lint comment", "event", s.cfg.EventName)
		return OutcomeSkipped
	}
	if s.cfg.Token == "" {
		s.log.Error("GITHUB_TOKEN is not set; cannot manage the TFLint comment")
		return OutcomeConfigError
	}

	marker := render.LintMarker(s.cfg.WorkingDir)
	// The plain working dir matches comments posted before the hidden
	// marker existed; the marker is tried first because it is stricter.
	tokens := []string{marker, s.cfg.WorkingDir}

	if s.cfg.DeleteComment {
		prNumber, ok := s.resolvePR()
		if !ok {
			s.log.Info("no pull request found for this run, skipping lint comment")
			return OutcomeSkipped
		}
		return s.deleteComment(ctx, prNumber, tokens)
	}

	parsed := lint.Parse(s.cfg.LintOutput)
	if parsed.Dropped > 0 {
		s.log.Debug("ignored unrecognized lint output lines", "count", parsed.Dropped)
	}

	body := render.LintComment(render.LintInput{
		WorkingDir: s.cfg.WorkingDir,
		Marker:     marker,
		Files:      parsed.Files,
		Totals:     lint.Totals(parsed.Files),
		RunURL:     s.cfg.RunURL(),
		BlobBase:   s.cfg.BlobBaseURL(),
		Footer: render.FooterInput{
			Actor:      s.cfg.Actor,
			EventName:  s.cfg.EventName,
			WorkingDir: s.cfg.WorkingDir,
			Workflow:   s.cfg.Workflow,
			RunURL:     s.cfg.RunURL(),
			CommitSHA:  s.cfg.SHA,
			CommitURL:  s.cfg.CommitURL(),
		},
	})

	// The step summary and preview are written even when no PR can be
	// resolved; the summary page is then the run's only report.
	writeArtifacts(s.cfg, s.log, body)

	prNumber, ok := s.resolvePR()
	if !ok {
		s.log.Info("no pull request found for this run, skipping lint comment")
		return OutcomeSkipped
	}

	s.log.Info("upserting lint comment", "pr", prNumber, "marker", marker)
	outcome, id, err := upsertComment(ctx, s.forge, prNumber, tokens, body)
	if err != nil {
		s.log.Error("failed to upsert lint comment", "pr", prNumber, "error", err)
		return outcome
	}
	s.log.Info("lint comment "+outcome.String(), "pr", prNumber, "comment_id", id)
	return outcome
}

// resolvePR reads the pull request number from the event payload. The lint
// pipeline has no commit-association fallback.
func (s *LintCommentService) resolvePR() (int, bool) {
	number, ok, err := actions.ResolvePRNumber(s.cfg.EventPath)
	if err != nil {
		s.log.Warn("failed to read event payload", "path", s.cfg.EventPath, "error", err)
	}
	return number, ok
}

// deleteComment removes a previously posted lint comment. A comment that
// was never posted, or already removed, is treated as success.
func (s *LintCommentService) deleteComment(ctx context.Context, prNumber int, tokens []string) Outcome {
	id, found, err := findMarkedComment(ctx, s.forge, prNumber, tokens)
	if err != nil {
		s.log.Warn("failed to look up lint comment for deletion", "pr", prNumber, "error", err)
		return OutcomeFailed
	}
	if !found {
		s.log.Info("no lint comment to delete", "pr", prNumber)
		return OutcomeDeleted
	}

	cctx, cancel := callContext(ctx)
	defer cancel()
	if err := s.forge.DeleteIssueComment(cctx, id); err != nil {
		s.log.Warn("failed to delete lint comment", "pr", prNumber, "comment_id", id, "error", err)
		return OutcomeFailed
	}
	s.log.Info("deleted lint comment", "pr", prNumber, "comment_id", id)
	return OutcomeDeleted
}
