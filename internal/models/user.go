package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleIdeaCreator = "idea_creator"
	RoleExecutor    = "executor"
	RoleEmployer    = "employer"
	RoleAdmin       = "admin"
)

// User represents a marketplace participant
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword string         `gorm:"size:255;not null" json:"-"`
	FullName       string         `gorm:"size:200;not null" json:"full_name"`
	Role           string         `gorm:"size:50;not null" json:"role"` // idea_creator, executor, employer, admin
	AvatarURL      string         `gorm:"size:500" json:"avatar_url"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Skills         StringList     `gorm:"type:text" json:"skills"`
	PortfolioURL   string         `gorm:"size:500" json:"portfolio_url"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsVerified     bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
