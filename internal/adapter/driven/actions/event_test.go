package actions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestIsPullRequestEvent(t *testing.T) {
	assert.True(t, IsPullRequestEvent("pull_request"))
	assert.True(t, IsPullRequestEvent("pull_request_target"))
	assert.False(t, IsPullRequestEvent("push"))
	assert.False(t, IsPullRequestEvent(""))
}

func TestResolvePRNumber_PullRequestEvent(t *testing.T) {
	path := writeEvent(t, `{"number": 42, "pull_request": {"head": {"sha": "abc"}}}`)

	number, ok, err := ResolvePRNumber(path)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, number)
}

func TestResolvePRNumber_IssueCommentOnPR(t *testing.T) {
	path := writeEvent(t, `{"issue": {"number": 7, "pull_request": {"url": "https://api.github.com/repos/o/r/pulls/7"}}}`)

	number, ok, err := ResolvePRNumber(path)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, number)
}

func TestResolvePRNumber_IssueWithoutPR(t *testing.T) {
	path := writeEvent(t, `{"issue": {"number": 7}}`)

	_, ok, err := ResolvePRNumber(path)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolvePRNumber_NullPullRequest(t *testing.T) {
	path := writeEvent(t, `{"number": 42, "pull_request": null}`)

	_, ok, err := ResolvePRNumber(path)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolvePRNumber_PushEventPayload(t *testing.T) {
	path := writeEvent(t, `{"ref": "refs/heads/main", "commits": []}`)

	_, ok, err := ResolvePRNumber(path)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolvePRNumber_EmptyPath(t *testing.T) {
	_, ok, err := ResolvePRNumber("")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolvePRNumber_MissingFile(t *testing.T) {
	_, ok, err := ResolvePRNumber(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.False(t, ok)
}

func TestResolvePRNumber_MalformedJSON(t *testing.T) {
	path := writeEvent(t, `{not json`)

	_, ok, err := ResolvePRNumber(path)

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "parsing event payload")
}
