package models

import "time"

// Idea statuses
const (
	IdeaStatusUnderReview = "under_review"
	IdeaStatusInProject   = "in_project"
	IdeaStatusRejected    = "rejected"
)

// Idea is a proposal for work owned by its creator. An idea moves to
// in_project once a project is derived from it.
type Idea struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	Requirements string     `gorm:"type:text" json:"requirements"`
	Status       string     `gorm:"size:50;default:under_review" json:"status"` // under_review, in_project, rejected
	CreatorID    uint       `gorm:"not null;index" json:"creator_id"`
	Creator      *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Idea) TableName() string { return "ideas" }
