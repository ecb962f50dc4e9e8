package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraform-ci-tools/prcomment/internal/application"
	"github.com/terraform-ci-tools/prcomment/internal/config"
	"github.com/terraform-ci-tools/prcomment/internal/domain/port/driven"
)

// --- Fake forge ---

type fakeForge struct {
	comments []driven.IssueComment
	nextID   int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	commitPRs []int
	commitErr error
}

func (f *fakeForge) ListIssueComments(_ context.Context, _ int) ([]driven.IssueComment, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]driven.IssueComment, len(f.comments))
	copy(out, f.comments)
	return out, nil
}

func (f *fakeForge) CreateIssueComment(_ context.Context, _ int, body string) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	f.comments = append(f.comments, driven.IssueComment{ID: f.nextID, Body: body})
	return nil
}

func (f *fakeForge) UpdateIssueComment(_ context.Context, commentID int64, body string) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments[i].Body = body
			return nil
		}
	}
	return errors.New("comment not found")
}

func (f *fakeForge) DeleteIssueComment(_ context.Context, commentID int64) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeForge) PullRequestsForCommit(_ context.Context, _ string) ([]int, error) {
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.commitPRs, nil
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeEventPayload(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func planConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL:   "https://github.com",
		Repository:  "octo/infra",
		Owner:       "octo",
		RepoName:    "infra",
		OwnerForURL: "octo",
		Token:       "tok",
		EventName:   "pull_request",
		EventPath:   writeEventPayload(t, `{"number":7,"pull_request":{"number":7}}`),
		RunID:       "42",
		SHA:         "abc1234def",
		Actor:       "octocat",
		Workflow:    "terraform",
		WorkingDir:  t.TempDir(),
	}
}

func lintConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := planConfig(t)
	cfg.WorkingDir = "modules/vpc"
	cfg.LintOutput = "main.tf:10:5: Warning - unused variable (terraform_unused_declarations)"
	return cfg
}

// --- Plan pipeline ---

func TestPlanComment_UpsertIdempotent(t *testing.T) {
	cfg := planConfig(t)
	forge := &fakeForge{}
	svc := application.NewPlanCommentService(cfg, forge, discardLogger())

	got := svc.Run(context.Background())
	assert.Equal(t, application.OutcomeCreated, got)
	require.Len(t, forge.comments, 1)
	assert.Contains(t, forge.comments[0].Body, "## 📦 Terraform Plan for")
	assert.Equal(t, 2, strings.Count(forge.comments[0].Body, "<!-- tf-plan:"))

	cfg.PlanAdd = "3"
	got = svc.Run(context.Background())
	assert.Equal(t, application.OutcomeUpdated, got)
	require.Len(t, forge.comments, 1)
	assert.Contains(t, forge.comments[0].Body, "`3`")
	assert.Equal(t, 1, forge.createCalls)
	assert.Equal(t, 1, forge.updateCalls)
}

func TestPlanComment_SkipsNonPullRequestEvent(t *testing.T) {
	cfg := planConfig(t)
	cfg.EventName = "push"
	forge := &fakeForge{}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeSkipped, got)
	assert.Zero(t, forge.listCalls)
	assert.Zero(t, forge.createCalls)
}

func TestPlanComment_MissingTokenIsConfigError(t *testing.T) {
	cfg := planConfig(t)
	cfg.Token = ""
	cfg.CreateComment = true
	forge := &fakeForge{}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeConfigError, got)
	assert.Zero(t, forge.listCalls)
	assert.Zero(t, forge.createCalls)
}

func TestPlanComment_ResolvesPRFromCommit(t *testing.T) {
	cfg := planConfig(t)
	cfg.EventPath = writeEventPayload(t, `{"action":"completed"}`)
	forge := &fakeForge{commitPRs: []int{12}}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeCreated, got)
	require.Len(t, forge.comments, 1)
}

func TestPlanComment_NoPRFoundSkips(t *testing.T) {
	cfg := planConfig(t)
	cfg.EventPath = writeEventPayload(t, `{"action":"completed"}`)
	forge := &fakeForge{}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeSkipped, got)
	assert.Zero(t, forge.createCalls)
}

func TestPlanComment_NoPRStillWritesStepSummary(t *testing.T) {
	cfg := planConfig(t)
	cfg.EventPath = writeEventPayload(t, `{"action":"completed"}`)
	cfg.SHA = ""
	cfg.StepSummaryPath = filepath.Join(t.TempDir(), "summary.md")
	forge := &fakeForge{}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeSkipped, got)
	assert.Zero(t, forge.createCalls)
	summary, err := os.ReadFile(cfg.StepSummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Terraform Plan")
}

func TestPlanComment_CreateFailureReported(t *testing.T) {
	cfg := planConfig(t)
	forge := &fakeForge{createErr: errors.New("boom")}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeFailed, got)
}

func TestPlanComment_WritesStepSummaryAndPreview(t *testing.T) {
	cfg := planConfig(t)
	dir := t.TempDir()
	cfg.StepSummaryPath = filepath.Join(dir, "summary.md")
	cfg.PreviewPath = filepath.Join(dir, "preview.html")
	forge := &fakeForge{}

	got := application.NewPlanCommentService(cfg, forge, discardLogger()).Run(context.Background())
	require.Equal(t, application.OutcomeCreated, got)

	summary, err := os.ReadFile(cfg.StepSummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Terraform Plan")

	preview, err := os.ReadFile(cfg.PreviewPath)
	require.NoError(t, err)
	assert.Contains(t, string(preview), "<h2")
}

// --- Lint pipeline ---

func TestLintComment_MissingTokenIsConfigError(t *testing.T) {
	cfg := lintConfig(t)
	cfg.Token = ""
	forge := &fakeForge{}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeConfigError, got)
	assert.Zero(t, forge.listCalls)
}

func TestLintComment_NonPREventSkipsBeforeTokenCheck(t *testing.T) {
	cfg := lintConfig(t)
	cfg.EventName = "push"
	cfg.Token = ""
	forge := &fakeForge{}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeSkipped, got)
	assert.Zero(t, forge.listCalls)
}

func TestLintComment_NoPRStillWritesStepSummary(t *testing.T) {
	cfg := lintConfig(t)
	cfg.EventPath = writeEventPayload(t, `{"action":"completed"}`)
	cfg.StepSummaryPath = filepath.Join(t.TempDir(), "summary.md")
	forge := &fakeForge{}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeSkipped, got)
	assert.Zero(t, forge.createCalls)
	summary, err := os.ReadFile(cfg.StepSummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "TFLint")
}

func TestLintComment_UpsertIdempotent(t *testing.T) {
	cfg := lintConfig(t)
	forge := &fakeForge{}
	svc := application.NewLintCommentService(cfg, forge, discardLogger())

	got := svc.Run(context.Background())
	assert.Equal(t, application.OutcomeCreated, got)
	require.Len(t, forge.comments, 1)
	assert.Contains(t, forge.comments[0].Body, "<!-- tflint:modules/vpc -->")

	got = svc.Run(context.Background())
	assert.Equal(t, application.OutcomeUpdated, got)
	require.Len(t, forge.comments, 1)
}

func TestLintComment_MatchesLegacyCommentByWorkingDir(t *testing.T) {
	cfg := lintConfig(t)
	forge := &fakeForge{
		comments: []driven.IssueComment{{ID: 9, Body: "old lint report for modules/vpc"}},
		nextID:   9,
	}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeUpdated, got)
	require.Len(t, forge.comments, 1)
	assert.Equal(t, int64(9), forge.comments[0].ID)
	assert.Contains(t, forge.comments[0].Body, "<!-- tflint:modules/vpc -->")
}

func TestLintComment_DeleteMode(t *testing.T) {
	cfg := lintConfig(t)
	cfg.DeleteComment = true
	forge := &fakeForge{
		comments: []driven.IssueComment{{ID: 3, Body: "report <!-- tflint:modules/vpc -->"}},
		nextID:   3,
	}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeDeleted, got)
	assert.Empty(t, forge.comments)
	assert.Equal(t, 1, forge.deleteCalls)
}

func TestLintComment_DeleteModeNothingToDelete(t *testing.T) {
	cfg := lintConfig(t)
	cfg.DeleteComment = true
	forge := &fakeForge{}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeDeleted, got)
	assert.Zero(t, forge.deleteCalls)
	assert.Zero(t, forge.createCalls)
}

func TestLintComment_ListFailureReported(t *testing.T) {
	cfg := lintConfig(t)
	forge := &fakeForge{listErr: errors.New("502")}

	got := application.NewLintCommentService(cfg, forge, discardLogger()).Run(context.Background())

	assert.Equal(t, application.OutcomeFailed, got)
	assert.Zero(t, forge.createCalls)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "created", application.OutcomeCreated.String())
	assert.Equal(t, "config-error", application.OutcomeConfigError.String())
	assert.Equal(t, "unknown", application.Outcome(99).String())
}
