package services

import (
	"github.com/masna/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	IdeasCount        int64 `json:"ideas_count"`
	ProjectsCount     int64 `json:"projects_count"`
	ProposalsCount    int64 `json:"proposals_count"`
	CompletedProjects int64 `json:"completed_projects"`
}

// GetStats returns per-user counts for the dashboard. Proposal counts depend
// on the role: executors see their own proposals, everyone else sees the
// proposals on projects they employ.
func (s *DashboardService) GetStats(actor Actor) (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&models.Idea{}).
		Where("creator_id = ?", actor.ID).
		Count(&stats.IdeasCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Project{}).
		Where("employer_id = ? OR executor_id = ?", actor.ID, actor.ID).
		Count(&stats.ProjectsCount).Error; err != nil {
		return nil, err
	}

	if actor.Role == models.RoleExecutor {
		if err := s.db.Model(&models.Proposal{}).
			Where("executor_id = ?", actor.ID).
			Count(&stats.ProposalsCount).Error; err != nil {
			return nil, err
		}
	} else {
		sub := s.db.Model(&models.Project{}).Select("id").Where("employer_id = ?", actor.ID)
		if err := s.db.Model(&models.Proposal{}).
			Where("project_id IN (?)", sub).
			Count(&stats.ProposalsCount).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.Project{}).
		Where("(employer_id = ? OR executor_id = ?) AND status = ?",
			actor.ID, actor.ID, models.ProjectStatusCompleted).
		Count(&stats.CompletedProjects).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
