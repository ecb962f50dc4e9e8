package application

import (
	"context"
	"log/slog"

	"github.com/terraform-ci-tools/prcomment/internal/adapter/driven/actions"
	"github.com/terraform-ci-tools/prcomment/internal/config"
	"github.com/terraform-ci-tools/prcomment/internal/domain/model"
	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
	"github.com/terraform-ci-tools/prcomment/internal/plan"
	"github.com/terraform-ci-tools/prcomment/internal/render"
)

// PlanCommentService posts or updates the Terraform plan comment on the
// pull request associated with the current workflow run.
type PlanCommentService struct {
	cfg   *config.Config
	forge driven.ForgeComments
	log   *slog.Logger
}

// NewPlanCommentService wires the plan pipeline.
func NewPlanCommentService(cfg *config.Config, forge driven.ForgeComments, log *slog.Logger) *PlanCommentService {
	return &PlanCommentService{cfg: cfg, forge: forge, log: log}
}

// Run executes the plan pipeline once. Remote failures are logged as
// annotations and reported through the Outcome; they never panic and the
// caller is expected to exit zero regardless.
func (s *PlanCommentService) Run(ctx context.Context) Outcome {
	if !actions.IsPullRequestEvent(s.cfg.EventName) {
		s.log.Info("not a pull request event, skipping plan comment", "event", s.cfg.EventName)
		return OutcomeSkipped
	}
	if s.cfg.CreateComment && s.cfg.Token == "" {
		s.log.Error("GITHUB_TOKEN is required when CREATE_COMMENT is enabled")
		return OutcomeConfigError
	}

	marker := render.PlanMarker(s.cfg.Marker, s.cfg.WorkingDir)
	details, hasDetails := plan.ReadDetails(s.cfg.WorkingDir)
	if !hasDetails {
		s.log.Warn("no plan output file found", "dir", s.cfg.WorkingDir)
	}

	body := render.PlanComment(render.PlanInput{
		WorkingDir: s.cfg.WorkingDir,
		Marker:     marker,
		Counts:     model.PlanCounts{Add: s.cfg.PlanAdd, Change: s.cfg.PlanChange, Destroy: s.cfg.PlanDestroy},
		Details:    details,
		HasDetails: hasDetails,
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

	prNumber := s.resolvePR(ctx)
	if prNumber == 0 {
		s.log.Info("no pull request found for this run, skipping plan comment")
		return OutcomeSkipped
	}

	s.log.Info("upserting plan comment", "pr", prNumber, "marker", marker)
	outcome, id, err := upsertComment(ctx, s.forge, prNumber, []string{marker}, body)
	if err != nil {
		s.log.Error("failed to upsert plan comment", "pr", prNumber, "error", err)
		return outcome
	}
	s.log.Info("plan comment "+outcome.String(), "pr", prNumber, "comment_id", id)
	return outcome
}

// resolvePR determines the pull request number, first from the event
// payload, then by asking which open PRs contain the triggering commit.
// Returns 0 when the run is not attached to any PR.
func (s *PlanCommentService) resolvePR(ctx context.Context) int {
	number, ok, err := actions.ResolvePRNumber(s.cfg.EventPath)
	if err != nil {
		s.log.Warn("failed to read event payload", "path", s.cfg.EventPath, "error", err)
	}
	if ok {
		return number
	}
	if s.cfg.SHA == "" {
		return 0
	}

	cctx, cancel := callContext(ctx)
	defer cancel()
	numbers, err := s.forge.PullRequestsForCommit(cctx, s.cfg.SHA)
	if err != nil {
		s.log.Warn("failed to resolve pull request from commit", "sha", s.cfg.SHA, "error", err)
		return 0
	}
	if len(numbers) == 0 {
		return 0
	}
	return numbers[0]
}
