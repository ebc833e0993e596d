package services

import (
	"errors"
	"strings"
	"time"

	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/logger"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type DeriveProjectRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description" binding:"required"`
	Budget       *float64   `json:"budget"`
	Deadline     *time.Time `json:"deadline"`
	Requirements string     `json:"requirements"`
	IdeaID       *uint      `json:"idea_id"`
}

type ProjectListRequest struct {
	Skip       int    `form:"skip" binding:"min=0"`
	Limit      int    `form:"limit" binding:"min=0,max=1000"`
	Status     string `form:"status"`
	EmployerID uint   `form:"employer_id"`
	Search     string `form:"search"`
}

// Derive creates a project, optionally derived from an idea. When an idea is
// given and a project already references it, the existing project is returned
// unchanged: creation is idempotent per idea. The linked idea is moved to
// in_project as a best-effort side update; a failure there is logged and
// swallowed so the committed project is never lost to it.
func (s *ProjectService) Derive(actor Actor, req *DeriveProjectRequest) (*models.Project, error) {
	if !policy.CanCreateProject(actor.Role) {
		return nil, response.NewForbidden("only employers can create projects")
	}

	if req.IdeaID != nil {
		var existing models.Project
		err := s.db.Where("idea_id = ?", *req.IdeaID).First(&existing).Error
		if err == nil {
			return s.GetByID(existing.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var count int64
		if err := s.db.Model(&models.Idea{}).Where("id = ?", *req.IdeaID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, response.NewNotFound("idea not found")
		}
	}

	project := models.Project{
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Status:       models.ProjectStatusNew,
		EmployerID:   actor.ID,
		IdeaID:       req.IdeaID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	if project.IdeaID != nil {
		err := s.db.Model(&models.Idea{}).
			Where("id = ? AND status <> ?", *project.IdeaID, models.IdeaStatusInProject).
			Update("status", models.IdeaStatusInProject).Error
		if err != nil {
			// Non-critical side effect: the project is already committed,
			// so log and continue instead of propagating.
			logger.Warn().
				Err(err).
				Uint("idea_id", *project.IdeaID).
				Uint("project_id", project.ID).
				Msg("failed to move idea to in_project after project creation")
		}
	}

	return s.GetByID(project.ID)
}

// GetByID returns a fully hydrated project: employer, executor, idea and the
// idea's creator attached.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.
		Preload("Employer").
		Preload("Executor").
		Preload("Idea").
		Preload("Idea.Creator").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// List returns hydrated projects filtered by status, employer and search.
func (s *ProjectService) List(req *ProjectListRequest) ([]models.Project, error) {
	if req.Limit == 0 {
		req.Limit = 100
	}

	query := s.db.Model(&models.Project{}).
		Preload("Employer").
		Preload("Executor").
		Preload("Idea").
		Preload("Idea.Creator")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.EmployerID != 0 {
		query = query.Where("employer_id = ?", req.EmployerID)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var projects []models.Project
	if err := query.Offset(req.Skip).Limit(req.Limit).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
