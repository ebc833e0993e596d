package main

import (
	"context"

	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/handlers"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/internal/utils"
	"github.com/masna/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// appServices holds the initialized services and handlers needed by the application.
type appServices struct {
	authService   *services.AuthService
	authHandler   *handlers.AuthHandler
	taskQueue     services.TaskQueue
	worker        *services.Worker
	reconcileCron *cron.Cron
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	authService := services.NewAuthService(db, &cfg.JWT)
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warnf("Failed to create admin user: %v", err)
	}

	reconcileService := services.NewReconcileService(db)
	processReconcile := func(ctx context.Context, task *services.ReconcileTask) error {
		report, err := reconcileService.Run(task.Options)
		if err != nil {
			return err
		}
		logger.Info().
			Int("duplicate_ideas", len(report.DuplicateIdeaIDs)).
			Int("modified", report.Modified).
			Msg("reconciliation task finished")
		return nil
	}

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processReconcile)
	}

	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processReconcile)
			if err := worker.Start(); err != nil {
				logger.Warnf("Failed to start worker: %v", err)
			}
		}
	}

	reconcileCron := services.StartReconcileScheduler(db, &cfg.Reconcile)

	return &appServices{
		authService:   authService,
		authHandler:   handlers.NewAuthHandler(authService),
		taskQueue:     taskQueue,
		worker:        worker,
		reconcileCron: reconcileCron,
	}
}

// shutdown stops background processing started by bootstrap.
func (app *appServices) shutdown() {
	if app.reconcileCron != nil {
		app.reconcileCron.Stop()
	}
	if app.worker != nil {
		app.worker.Stop()
	}
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
}
