package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetStats returns per-user dashboard counts
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
