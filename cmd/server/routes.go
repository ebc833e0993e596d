package main

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/handlers"
	"github.com/masna/backend/internal/middleware"
	"github.com/masna/backend/internal/models"
)

// setupRoutes registers all HTTP routes.
func setupRoutes(r *gin.Engine, cfg *config.Config, app *appServices) {
	db := models.GetDB()

	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// Uploaded project files are served statically, like the original
	// uploads mount.
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", app.authHandler.Register)
			auth.POST("/login", app.authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/users/me", app.authHandler.GetCurrentUser)
			protected.PUT("/users/me", app.authHandler.UpdateCurrentUser)

			ratingHandler := handlers.NewRatingHandler(db)
			protected.POST("/ratings", ratingHandler.Create)
			protected.GET("/users/:id/ratings", ratingHandler.ListForUser)

			ideaHandler := handlers.NewIdeaHandler(db)
			protected.GET("/ideas", ideaHandler.List)
			protected.GET("/ideas/:id", ideaHandler.GetByID)
			protected.POST("/ideas", ideaHandler.Create)
			protected.PUT("/ideas/:id", ideaHandler.Update)

			projectHandler := handlers.NewProjectHandler(db)
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)

			proposalHandler := handlers.NewProposalHandler(db)
			protected.POST("/proposals", proposalHandler.Create)
			protected.GET("/proposals/me", proposalHandler.ListMine)
			protected.PUT("/proposals/:id", proposalHandler.Decide)
			protected.GET("/projects/:id/proposals", proposalHandler.ListForProject)

			messageHandler := handlers.NewMessageHandler(db)
			protected.POST("/messages", messageHandler.Send)
			protected.GET("/projects/:id/messages", messageHandler.ListForProject)

			fileHandler := handlers.NewFileHandler(db, cfg.Upload.Dir)
			protected.POST("/projects/:id/files", fileHandler.Upload)
			protected.GET("/projects/:id/files", fileHandler.ListForProject)

			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminRequired())
			{
				adminHandler := handlers.NewAdminHandler(db)
				admin.POST("/reconcile", adminHandler.Reconcile)
				admin.GET("/reconcile/duplicates", adminHandler.FindDuplicates)
			}
		}
	}
}
