package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

// AdminHandler exposes maintenance operations. Reconciliation runs against
// the store directly and is meant for maintenance windows; admin role is
// enforced by the route group.
type AdminHandler struct {
	reconcileService *services.ReconcileService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		reconcileService: services.NewReconcileService(db),
	}
}

type reconcileRequest struct {
	Keep            string `json:"keep" binding:"omitempty,oneof=latest oldest"`
	Mode            string `json:"mode" binding:"omitempty,oneof=soft hard"`
	ResetIdeaStatus bool   `json:"reset_idea_status"`
	DryRun          bool   `json:"dry_run"`
}

// Reconcile runs or enqueues a duplicate-project cleanup.
// Dry-run executes synchronously and returns the planned actions; a real run
// goes through the task queue so it never blocks the request.
// POST /api/admin/reconcile
func (h *AdminHandler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	opts := services.ReconcileOptions{
		Keep:            services.KeepPolicy(req.Keep),
		Mode:            services.ReconcileMode(req.Mode),
		ResetIdeaStatus: req.ResetIdeaStatus,
		DryRun:          req.DryRun,
	}

	if req.DryRun {
		report, err := h.reconcileService.Run(opts)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, report)
		return
	}

	queue := services.GetTaskQueue()
	if queue == nil {
		report, err := h.reconcileService.Run(opts)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, report)
		return
	}

	if err := queue.Enqueue(&services.ReconcileTask{Options: opts}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"enqueued": true, "async": queue.IsAsync()})
}

// FindDuplicates reports ideas currently referenced by more than one project.
// GET /api/admin/reconcile/duplicates
func (h *AdminHandler) FindDuplicates(c *gin.Context) {
	report, err := h.reconcileService.Run(services.ReconcileOptions{DryRun: true})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"duplicate_idea_ids": report.DuplicateIdeaIDs,
		"survivors":          report.Survivors,
	})
}
