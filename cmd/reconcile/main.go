// Command reconcile cleans up duplicate projects created for the same idea.
// It operates directly on the store and is meant to run in a maintenance
// window, not alongside live traffic.
package main

import (
	"flag"
	"os"

	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/logger"
)

func main() {
	var (
		hardDelete = flag.Bool("delete", false, "permanently delete duplicates instead of cancelling")
		keep       = flag.String("keep", "latest", "which project to keep per idea: latest or oldest")
		dryRun     = flag.Bool("dry-run", false, "only report actions, do not modify the store")
		resetIdea  = flag.Bool("reset-idea-status", false, "reset ideas with no active project back to under_review")
	)
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Server.LogLevel)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	mode := services.ModeSoft
	if *hardDelete {
		mode = services.ModeHard
	}

	service := services.NewReconcileService(models.GetDB())
	report, err := service.Run(services.ReconcileOptions{
		Keep:            services.KeepPolicy(*keep),
		Mode:            mode,
		ResetIdeaStatus: *resetIdea,
		DryRun:          *dryRun,
	})
	if err != nil {
		logger.Fatalf("Reconciliation failed: %v", err)
	}

	if len(report.DuplicateIdeaIDs) == 0 {
		logger.Infof("No duplicate projects found by idea_id")
		return
	}

	logger.Info().
		Uints("idea_ids", report.DuplicateIdeaIDs).
		Msg("found ideas with duplicate projects")

	for _, action := range report.Actions {
		logger.Info().
			Uint("idea_id", action.IdeaID).
			Uint("project_id", action.ProjectID).
			Str("op", action.Op).
			Bool("dry_run", report.DryRun).
			Msg("reconcile action")
	}

	if report.DryRun {
		logger.Infof("Dry-run complete. No changes committed")
		return
	}
	logger.Infof("Cleanup complete. Modified rows: %d", report.Modified)
}
