package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectStatusNew        = "new"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Project is a funded engagement owned by an employer, optionally derived
// from exactly one idea. ExecutorID is set when a proposal is accepted.
type Project struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Budget       *float64       `json:"budget"`
	Deadline     *time.Time     `json:"deadline"`
	Requirements string         `gorm:"type:text" json:"requirements"`
	Status       string         `gorm:"size:50;default:new" json:"status"` // new, in_progress, completed, cancelled
	EmployerID   uint           `gorm:"not null;index" json:"employer_id"`
	Employer     *User          `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	ExecutorID   *uint          `gorm:"index" json:"executor_id"`
	Executor     *User          `gorm:"foreignKey:ExecutorID" json:"executor,omitempty"`
	IdeaID       *uint          `gorm:"index" json:"idea_id"`
	Idea         *Idea          `gorm:"foreignKey:IdeaID" json:"idea,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
