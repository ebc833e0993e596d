package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{
		messageService: services.NewMessageService(db),
	}
}

// Send sends a message on a project
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Send(actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message)
}

// ListForProject returns all messages on a project
// GET /api/projects/:id/messages
func (h *MessageHandler) ListForProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	messages, err := h.messageService.ListForProject(actor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, messages)
}
