package actions

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf))

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	assert.Equal(t, "::debug::d\n::notice::i\n::warning::w\n::error::e\n", buf.String())
}

func TestHandler_AttrsAppended(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf))

	logger.Info("updated comment", "id", 1234, "dir", "envs/prod")

	assert.Equal(t, "::notice::updated comment id=1234 dir=envs/prod\n", buf.String())
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf)).With("pipeline", "lint").WithGroup("gh")

	logger.Warn("partial failure", "status", 502)

	assert.Equal(t, "::warning::partial failure pipeline=lint gh.status=502\n", buf.String())
}

func TestHandler_EscapesCommandData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf))

	logger.Error("multi\nline 100%\r")

	assert.Equal(t, "::error::multi%0Aline 100%25%0D\n", buf.String())
}

func TestAppendStepSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")

	require.NoError(t, AppendStepSummary(path, "## first"))
	require.NoError(t, AppendStepSummary(path, "## second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "## first\n## second\n", string(data))
}

func TestAppendStepSummary_BlankPathIsNoop(t *testing.T) {
	assert.NoError(t, AppendStepSummary("", "ignored"))
}
