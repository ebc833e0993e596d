package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{
		ratingService: services.NewRatingService(db),
	}
}

// Create records a rating for a project counterpart
// POST /api/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var req services.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rating, err := h.ratingService.Create(actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, rating)
}

// ListForUser returns ratings received by a user
// GET /api/users/:id/ratings
func (h *RatingHandler) ListForUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	ratings, err := h.ratingService.ListForUser(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, ratings)
}
