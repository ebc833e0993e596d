package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type IdeaHandler struct {
	ideaService *services.IdeaService
}

func NewIdeaHandler(db *gorm.DB) *IdeaHandler {
	return &IdeaHandler{
		ideaService: services.NewIdeaService(db),
	}
}

// Create creates a new idea
// POST /api/ideas
func (h *IdeaHandler) Create(c *gin.Context) {
	var req services.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	idea, err := h.ideaService.Create(actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, idea)
}

// List returns ideas with optional filtering
// GET /api/ideas
func (h *IdeaHandler) List(c *gin.Context) {
	var req services.IdeaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ideas, err := h.ideaService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, ideas)
}

// GetByID returns an idea by ID
// GET /api/ideas/:id
func (h *IdeaHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid idea id")
		return
	}

	idea, err := h.ideaService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, idea)
}

// Update updates an idea
// PUT /api/ideas/:id
func (h *IdeaHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid idea id")
		return
	}

	var req services.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	idea, err := h.ideaService.Update(actor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, idea)
}
