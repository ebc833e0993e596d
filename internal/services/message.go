package services

import (
	"errors"

	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

type SendMessageRequest struct {
	ProjectID  uint   `json:"project_id" binding:"required"`
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// Send creates a message on a project. Only the employer and the assigned
// executor may exchange messages.
func (s *MessageService) Send(actor Actor, req *SendMessageRequest) (*models.Message, error) {
	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanMessage(project.EmployerID, project.ExecutorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to send messages for this project")
	}

	message := models.Message{
		ProjectID:  req.ProjectID,
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListForProject returns all messages on a project, visible to participants.
func (s *MessageService) ListForProject(actor Actor, projectID uint) ([]models.Message, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanMessage(project.EmployerID, project.ExecutorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to view messages for this project")
	}

	var messages []models.Message
	if err := s.db.Preload("Sender").Where("project_id = ?", projectID).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
