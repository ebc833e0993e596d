package services

import (
	"errors"

	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type ProposalService struct {
	db *gorm.DB
}

func NewProposalService(db *gorm.DB) *ProposalService {
	return &ProposalService{db: db}
}

type SubmitProposalRequest struct {
	ProjectID        uint     `json:"project_id" binding:"required"`
	ProposedPrice    *float64 `json:"proposed_price"`
	ProposedTimeline string   `json:"proposed_timeline"`
	CoverLetter      string   `json:"cover_letter"`
}

type DecideProposalRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// Submit creates a pending proposal by the actor against a project. An
// executor gets one proposal per project; a second submit conflicts.
func (s *ProposalService) Submit(actor Actor, req *SubmitProposalRequest) (*models.Proposal, error) {
	if !policy.CanSubmitProposal(actor.Role) {
		return nil, response.NewForbidden("only executors can create proposals")
	}

	var count int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, response.NewNotFound("project not found")
	}

	var existing int64
	err := s.db.Model(&models.Proposal{}).
		Where("project_id = ? AND executor_id = ?", req.ProjectID, actor.ID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("you already have a proposal for this project")
	}

	proposal := models.Proposal{
		ProjectID:        req.ProjectID,
		ExecutorID:       actor.ID,
		ProposedPrice:    req.ProposedPrice,
		ProposedTimeline: req.ProposedTimeline,
		CoverLetter:      req.CoverLetter,
		Status:           models.ProposalStatusPending,
	}

	if err := s.db.Create(&proposal).Error; err != nil {
		return nil, err
	}

	return s.GetByID(proposal.ID)
}

// GetByID returns a proposal with its executor attached.
func (s *ProposalService) GetByID(id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := s.db.Preload("Executor").First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("proposal not found")
		}
		return nil, err
	}
	return &proposal, nil
}

// Decide accepts or rejects a pending proposal. Accepting assigns the
// proposal's executor to the project and moves the project to in_progress in
// the same transaction; rejecting touches only the proposal. Sibling pending
// proposals on the project are left as they are.
func (s *ProposalService) Decide(actor Actor, proposalID uint, newStatus string) (*models.Proposal, error) {
	if newStatus != models.ProposalStatusAccepted && newStatus != models.ProposalStatusRejected {
		return nil, response.NewBadRequest("status must be accepted or rejected")
	}

	var proposal models.Proposal
	if err := s.db.First(&proposal, proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("proposal not found")
		}
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, proposal.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanDecideProposal(actor.Role, project.EmployerID, actor.ID) {
		return nil, response.NewForbidden("not authorized to update proposal")
	}

	if proposal.Status != models.ProposalStatusPending {
		return nil, response.NewConflict("proposal already decided")
	}

	if newStatus == models.ProposalStatusAccepted {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&proposal).Update("status", models.ProposalStatusAccepted).Error; err != nil {
				return err
			}
			return tx.Model(&project).Updates(map[string]interface{}{
				"executor_id": proposal.ExecutorID,
				"status":      models.ProjectStatusInProgress,
			}).Error
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.db.Model(&proposal).Update("status", models.ProposalStatusRejected).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(proposal.ID)
}

// ListForProject returns all proposals on a project. Only the project's
// employer or an admin may see them.
func (s *ProposalService) ListForProject(actor Actor, projectID uint) ([]models.Proposal, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanViewProposals(actor.Role, project.EmployerID, actor.ID) {
		return nil, response.NewForbidden("not authorized to view proposals")
	}

	var proposals []models.Proposal
	if err := s.db.Preload("Executor").Where("project_id = ?", projectID).Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// ListForExecutor returns the actor's own proposals, newest first. Admins
// see every proposal.
func (s *ProposalService) ListForExecutor(actor Actor) ([]models.Proposal, error) {
	query := s.db.Preload("Executor").Order("created_at DESC")
	if actor.Role != models.RoleAdmin {
		query = query.Where("executor_id = ?", actor.ID)
	}

	var proposals []models.Proposal
	if err := query.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
