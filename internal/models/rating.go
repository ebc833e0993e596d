package models

import "time"

// Rating is a 1-5 score a project participant gives their counterpart.
// One rating per (project, rater) pair.
type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RaterID     uint      `gorm:"not null;uniqueIndex:idx_ratings_project_rater" json:"rater_id"`
	Rater       *User     `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	RatedUserID uint      `gorm:"not null;index" json:"rated_user_id"`
	ProjectID   uint      `gorm:"not null;uniqueIndex:idx_ratings_project_rater" json:"project_id"`
	Score       int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }
