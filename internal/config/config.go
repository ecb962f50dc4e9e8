// Package config loads pipeline configuration from the CI environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultServerURL  = "https://github.com"
)

// Config holds everything the comment pipelines read from the environment.
// It is built once at process start and passed by parameter; no other
// package reads ambient environment state.
type Config struct {
	APIBaseURL  string // GITHUB_API_URL
	ServerURL   string // GITHUB_SERVER_URL
	Repository  string // GITHUB_REPOSITORY owner/name slug (required)
	Owner       string
	RepoName    string
	OwnerForURL string // GITHUB_REPOSITORY_OWNER, falls back to Owner
	Token       string // GITHUB_TOKEN
	EventName   string // GITHUB_EVENT_NAME
	EventPath   string // GITHUB_EVENT_PATH
	RunID       string // GITHUB_RUN_ID
	SHA         string // GITHUB_SHA
	Actor       string // GITHUB_ACTOR
	Workflow    string // GITHUB_WORKFLOW
	WorkingDir  string // TF_ACTIONS_WORKING_DIR, falling back to GITHUB_WORKSPACE, then "."
	Marker      string // PR_COMMENT_MARKER override

	CreateComment bool // CREATE_COMMENT, plan pipeline
	DeleteComment bool // PR_DELETE_COMMENT, lint pipeline

	PlanAdd     string // TF_ADD_COUNT
	PlanChange  string // TF_CHANGE_COUNT
	PlanDestroy string // TF_DESTROY_COUNT

	LintOutput string // TFLINT_OUTPUT

	StepSummaryPath string // GITHUB_STEP_SUMMARY
	PreviewPath     string // PR_COMMENT_PREVIEW_FILE
}

// Load reads configuration from environment variables and returns a
// validated Config. GITHUB_REPOSITORY is required; whether GITHUB_TOKEN is
// required depends on the pipeline, so each service checks it before any
// network call. Everything else has a documented default or may be empty.
func Load() (*Config, error) {
	repo := os.Getenv("GITHUB_REPOSITORY")
	if repo == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY is not set")
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY has invalid slug %q: expected owner/name", repo)
	}

	ownerForURL := os.Getenv("GITHUB_REPOSITORY_OWNER")
	if ownerForURL == "" {
		ownerForURL = owner
	}

	workingDir := strings.TrimSpace(os.Getenv("TF_ACTIONS_WORKING_DIR"))
	if workingDir == "" {
		workingDir = os.Getenv("GITHUB_WORKSPACE")
	}
	if workingDir == "" {
		workingDir = "."
	}

	return &Config{
		APIBaseURL:  envOr("GITHUB_API_URL", defaultAPIBaseURL),
		ServerURL:   envOr("GITHUB_SERVER_URL", defaultServerURL),
		Repository:  repo,
		Owner:       owner,
		RepoName:    name,
		OwnerForURL: ownerForURL,
		Token:       os.Getenv("GITHUB_TOKEN"),
		EventName:   os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:   os.Getenv("GITHUB_EVENT_PATH"),
		RunID:       os.Getenv("GITHUB_RUN_ID"),
		SHA:         os.Getenv("GITHUB_SHA"),
		Actor:       os.Getenv("GITHUB_ACTOR"),
		Workflow:    os.Getenv("GITHUB_WORKFLOW"),
		WorkingDir:  workingDir,
		Marker:      strings.TrimSpace(os.Getenv("PR_COMMENT_MARKER")),

		CreateComment: boolEnv("CREATE_COMMENT"),
		DeleteComment: boolEnv("PR_DELETE_COMMENT"),

		PlanAdd:     envOr("TF_ADD_COUNT", "0"),
		PlanChange:  envOr("TF_CHANGE_COUNT", "0"),
		PlanDestroy: envOr("TF_DESTROY_COUNT", "0"),

		LintOutput: os.Getenv("TFLINT_OUTPUT"),

		StepSummaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
		PreviewPath:     os.Getenv("PR_COMMENT_PREVIEW_FILE"),
	}, nil
}

// RunURL returns the link to the workflow run's log page.
func (c *Config) RunURL() string {
	return fmt.Sprintf("%s/%s/%s/actions/runs/%s", c.ServerURL, c.OwnerForURL, c.RepoName, c.RunID)
}

// CommitURL returns the link to the triggering commit, or "" without a SHA.
func (c *Config) CommitURL() string {
	if c.SHA == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/commit/%s", c.ServerURL, c.OwnerForURL, c.RepoName, c.SHA)
}

// BlobBaseURL returns the base URL for linking files at the triggering
// commit ("<server>/<owner>/<repo>/blob/<sha>"), or "" without a SHA.
func (c *Config) BlobBaseURL() string {
	if c.SHA == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/blob/%s", c.ServerURL, c.OwnerForURL, c.RepoName, c.SHA)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}
