package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/services"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "masna",
		"components": gin.H{
			"database":   dbStatus,
			"queue_mode": queueMode,
		},
	})
}
