package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/terraform-ci-tools/prcomment/internal/adapter/driven/actions"
	githubadapter "github.com/terraform-ci-tools/prcomment/internal/adapter/driven/github"
	"github.com/terraform-ci-tools/prcomment/internal/application"
	"github.com/terraform-ci-tools/prcomment/internal/config"
)

// plan-comment posts or updates the Terraform plan comment on the current
// pull request. It always exits zero so a comment failure cannot fail the
// CI job; problems surface as workflow annotations instead.
func main() {
	log := slog.New(actions.NewHandler(os.Stdout))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forge, err := githubadapter.NewClient(cfg.Token, cfg.Repository, cfg.APIBaseURL)
	if err != nil {
		log.Error("failed to build GitHub client", "error", err)
		return
	}

	outcome := application.NewPlanCommentService(cfg, forge, log).Run(ctx)
	log.Debug("plan comment pipeline finished", "outcome", outcome.String())
}
