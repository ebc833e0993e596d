package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type ProposalHandler struct {
	proposalService *services.ProposalService
}

func NewProposalHandler(db *gorm.DB) *ProposalHandler {
	return &ProposalHandler{
		proposalService: services.NewProposalService(db),
	}
}

// Create submits a proposal against a project
// POST /api/proposals
func (h *ProposalHandler) Create(c *gin.Context) {
	var req services.SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposalService.Submit(actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, proposal)
}

// Decide accepts or rejects a proposal
// PUT /api/proposals/:id
func (h *ProposalHandler) Decide(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid proposal id")
		return
	}

	var req services.DecideProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposalService.Decide(actor(c), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, proposal)
}

// ListForProject returns proposals on a project
// GET /api/projects/:id/proposals
func (h *ProposalHandler) ListForProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	proposals, err := h.proposalService.ListForProject(actor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, proposals)
}

// ListMine returns the caller's proposals
// GET /api/proposals/me
func (h *ProposalHandler) ListMine(c *gin.Context) {
	proposals, err := h.proposalService.ListForExecutor(actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, proposals)
}
