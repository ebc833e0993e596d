package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// Create creates a project, optionally derived from an idea. When the idea
// already has a project the existing one is returned.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.DeriveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Derive(actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// List returns projects with optional filtering
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projects, err := h.projectService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}
