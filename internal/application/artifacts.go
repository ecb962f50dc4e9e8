package application

import (
	"log/slog"
	"os"

	"github.com/terraform-ci-tools/prcomment/internal/adapter/driven/actions"
	"github.com/terraform-ci-tools/prcomment/internal/config"
	"github.com/terraform-ci-tools/prcomment/internal/render"
)

// writeArtifacts mirrors the comment body to the job summary page and, when
// requested, to a local HTML preview file. Both are best effort; a failure
// is logged and never blocks posting the comment.
func writeArtifacts(cfg *config.Config, log *slog.Logger, body string) {
	if cfg.StepSummaryPath != "" {
		if err := actions.AppendStepSummary(cfg.StepSummaryPath, body); err != nil {
			log.Warn("failed to append step summary", "path", cfg.StepSummaryPath, "error", err)
		}
	}
	if cfg.PreviewPath != "" {
		if err := os.WriteFile(cfg.PreviewPath, []byte(render.PreviewHTML(body)), 0o644); err != nil {
			log.Warn("failed to write comment preview", "path", cfg.PreviewPath, "error", err)
		}
	}
}
