package models

import "time"

// Proposal statuses
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// Proposal is an executor's bid to perform a project. At most one proposal
// exists per (project, executor) pair, enforced by the composite index.
type Proposal struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"not null;uniqueIndex:idx_proposals_project_executor" json:"project_id"`
	ExecutorID       uint      `gorm:"not null;uniqueIndex:idx_proposals_project_executor" json:"executor_id"`
	Executor         *User     `gorm:"foreignKey:ExecutorID" json:"executor,omitempty"`
	ProposedPrice    *float64  `json:"proposed_price"`
	ProposedTimeline string    `gorm:"size:200" json:"proposed_timeline"`
	CoverLetter      string    `gorm:"type:text" json:"cover_letter"`
	Status           string    `gorm:"size:50;default:pending" json:"status"` // pending, accepted, rejected
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Proposal) TableName() string { return "proposals" }
