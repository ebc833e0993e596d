package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/services"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(db *gorm.DB, uploadDir string) *FileHandler {
	return &FileHandler{
		fileService: services.NewFileService(db, uploadDir),
	}
}

// Upload stores a file for a project
// POST /api/projects/:id/files
func (h *FileHandler) Upload(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	isFinal := c.PostForm("is_final_delivery") == "true"

	src, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	defer src.Close()

	record, err := h.fileService.Upload(
		actor(c), id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src, isFinal,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// ListForProject returns files recorded for a project
// GET /api/projects/:id/files
func (h *FileHandler) ListForProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	files, err := h.fileService.ListForProject(actor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, files)
}
