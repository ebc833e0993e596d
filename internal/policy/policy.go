// Package policy holds the role- and ownership-based authorization checks
// evaluated before every mutating lifecycle operation. Checks are pure
// functions over the actor's role and ownership fields already loaded by the
// caller; no database access happens here.
package policy

import "github.com/masna/backend/internal/models"

// CanCreateIdea allows idea creators and admins.
func CanCreateIdea(role string) bool {
	return role == models.RoleIdeaCreator || role == models.RoleAdmin
}

// CanUpdateIdea allows the idea's creator or an admin.
func CanUpdateIdea(role string, creatorID, actorID uint) bool {
	return role == models.RoleAdmin || creatorID == actorID
}

// CanCreateProject allows employers and admins.
func CanCreateProject(role string) bool {
	return role == models.RoleEmployer || role == models.RoleAdmin
}

// CanSubmitProposal allows executors and admins.
func CanSubmitProposal(role string) bool {
	return role == models.RoleExecutor || role == models.RoleAdmin
}

// CanViewProposals allows the project's employer or an admin.
func CanViewProposals(role string, employerID, actorID uint) bool {
	return role == models.RoleAdmin || employerID == actorID
}

// CanDecideProposal allows the project's employer or an admin.
func CanDecideProposal(role string, employerID, actorID uint) bool {
	return role == models.RoleAdmin || employerID == actorID
}

// CanAccessProjectFiles allows the employer, the assigned executor, or an admin.
func CanAccessProjectFiles(role string, employerID uint, executorID *uint, actorID uint) bool {
	if role == models.RoleAdmin {
		return true
	}
	return isParticipant(employerID, executorID, actorID)
}

// CanMessage allows only the employer and the assigned executor. Admins get
// no bypass here: messages are a private channel between the two parties.
func CanMessage(employerID uint, executorID *uint, actorID uint) bool {
	return isParticipant(employerID, executorID, actorID)
}

// CanRate allows only project participants.
func CanRate(employerID uint, executorID *uint, actorID uint) bool {
	return isParticipant(employerID, executorID, actorID)
}

func isParticipant(employerID uint, executorID *uint, actorID uint) bool {
	if employerID == actorID {
		return true
	}
	return executorID != nil && *executorID == actorID
}

// ValidRole reports whether role is one of the known marketplace roles.
func ValidRole(role string) bool {
	switch role {
	case models.RoleIdeaCreator, models.RoleExecutor, models.RoleEmployer, models.RoleAdmin:
		return true
	default:
		return false
	}
}
