package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/internal/policy"
	"github.com/masna/backend/pkg/response"
	"gorm.io/gorm"
)

type FileService struct {
	db        *gorm.DB
	uploadDir string
}

func NewFileService(db *gorm.DB, uploadDir string) *FileService {
	return &FileService{db: db, uploadDir: uploadDir}
}

// Upload stores a project file on disk and records it. Only the employer,
// the assigned executor or an admin may upload.
func (s *FileService) Upload(actor Actor, projectID uint, filename, contentType string, src io.Reader, isFinalDelivery bool) (*models.FileUpload, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanAccessProjectFiles(actor.Role, project.EmployerID, project.ExecutorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to upload files for this project")
	}

	projectDir := filepath.Join(s.uploadDir, fmt.Sprintf("project_%d", projectID))
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, err
	}

	// Strip any path components the client sent
	filename = filepath.Base(filename)
	storedName := uuid.NewString() + "_" + filename
	path := filepath.Join(projectDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	record := models.FileUpload{
		ProjectID:       projectID,
		UploadedBy:      actor.ID,
		Filename:        filename,
		FileURL:         fmt.Sprintf("/uploads/project_%d/%s", projectID, storedName),
		FileType:        contentType,
		FileSize:        size,
		IsFinalDelivery: isFinalDelivery,
	}

	if err := s.db.Create(&record).Error; err != nil {
		os.Remove(path)
		return nil, err
	}
	return &record, nil
}

// ListForProject returns the files recorded for a project, visible to the
// employer, the assigned executor or an admin.
func (s *FileService) ListForProject(actor Actor, projectID uint) ([]models.FileUpload, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !policy.CanAccessProjectFiles(actor.Role, project.EmployerID, project.ExecutorID, actor.ID) {
		return nil, response.NewForbidden("not authorized to view files for this project")
	}

	var files []models.FileUpload
	if err := s.db.Where("project_id = ?", projectID).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
