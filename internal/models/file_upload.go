package models

import "time"

// FileUpload records a file attached to a project by the employer or the
// assigned executor. The file itself lives on disk under the upload root.
type FileUpload struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProjectID       uint      `gorm:"not null;index" json:"project_id"`
	UploadedBy      uint      `gorm:"not null" json:"uploaded_by"`
	Filename        string    `gorm:"size:500;not null" json:"filename"`
	FileURL         string    `gorm:"size:1000;not null" json:"file_url"`
	FileType        string    `gorm:"size:200" json:"file_type"`
	FileSize        int64     `json:"file_size"`
	IsFinalDelivery bool      `gorm:"default:false" json:"is_final_delivery"`
	CreatedAt       time.Time `json:"created_at"`
}

func (FileUpload) TableName() string { return "file_uploads" }
