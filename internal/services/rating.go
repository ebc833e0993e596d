package services

import (
	"errors"

	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

type CreateRatingRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	RatedUserID uint   `json:"rated_user_id" binding:"required"`
	Score       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

// Create records a 1-5 rating by a project participant. One rating per
// (project, rater) pair.
func (s *RatingService) Create(actor Actor, req *CreateRatingRequest) (*models.Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, response.NewBadRequest("rating must be between 1 and 5")
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanRate(project.EmployerID, project.ExecutorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to rate for this project")
	}

	var existing int64
	err := s.db.Model(&models.Rating{}).
		Where("project_id = ? AND rater_id = ?", req.ProjectID, actor.ID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("you already rated this project")
	}

	rating := models.Rating{
		RaterID:     actor.ID,
		RatedUserID: req.RatedUserID,
		ProjectID:   req.ProjectID,
		Score:       req.Score,
		Comment:     req.Comment,
	}

	if err := s.db.Create(&rating).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Rater").First(&rating, rating.ID).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListForUser returns all ratings received by a user.
func (s *RatingService) ListForUser(userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := s.db.Preload("Rater").Where("rated_user_id = ?", userID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
