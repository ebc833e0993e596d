package services

import (
	"errors"
	"strings"

	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type IdeaService struct {
	db *gorm.DB
}

func NewIdeaService(db *gorm.DB) *IdeaService {
	return &IdeaService{db: db}
}

type CreateIdeaRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Tags         []string `json:"tags"`
	Requirements string   `json:"requirements"`
}

type UpdateIdeaRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Requirements string   `json:"requirements"`
	Status       string   `json:"status" binding:"omitempty,oneof=under_review in_project rejected"`
}

type IdeaListRequest struct {
	Skip      int    `form:"skip" binding:"min=0"`
	Limit     int    `form:"limit" binding:"min=0,max=1000"`
	Status    string `form:"status"`
	CreatorID uint   `form:"creator_id"`
	Search    string `form:"search"`
}

// Create creates a new idea owned by the actor.
func (s *IdeaService) Create(actor Actor, req *CreateIdeaRequest) (*models.Idea, error) {
	if !policy.CanCreateIdea(actor.Role) {
		return nil, response.NewForbidden("only idea creators can create ideas")
	}

	idea := models.Idea{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         models.StringList(req.Tags),
		Requirements: req.Requirements,
		Status:       models.IdeaStatusUnderReview,
		CreatorID:    actor.ID,
	}

	if err := s.db.Create(&idea).Error; err != nil {
		return nil, err
	}

	return s.GetByID(idea.ID)
}

// GetByID returns an idea with its creator attached.
func (s *IdeaService) GetByID(id uint) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.Preload("Creator").First(&idea, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("idea not found")
		}
		return nil, err
	}
	return &idea, nil
}

// List returns ideas filtered by status, creator and free-text search.
func (s *IdeaService) List(req *IdeaListRequest) ([]models.Idea, error) {
	if req.Limit == 0 {
		req.Limit = 100
	}

	query := s.db.Model(&models.Idea{}).Preload("Creator")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CreatorID != 0 {
		query = query.Where("creator_id = ?", req.CreatorID)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var ideas []models.Idea
	if err := query.Offset(req.Skip).Limit(req.Limit).Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

// Update modifies an idea. Only the creator or an admin may update.
func (s *IdeaService) Update(actor Actor, id uint, req *UpdateIdeaRequest) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.First(&idea, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("idea not found")
		}
		return nil, err
	}

	if !policy.CanUpdateIdea(actor.Role, idea.CreatorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to update this idea")
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Tags != nil {
		updates["tags"] = models.StringList(req.Tags)
	}
	if req.Requirements != "" {
		updates["requirements"] = req.Requirements
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&idea).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(idea.ID)
}
