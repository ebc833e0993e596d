package policy

import (
	"testing"

	"github.com/masna/backend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCanCreateIdea(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{models.RoleIdeaCreator, true},
		{models.RoleAdmin, true},
		{models.RoleExecutor, false},
		{models.RoleEmployer, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := CanCreateIdea(tt.role); got != tt.expected {
			t.Errorf("CanCreateIdea(%q) = %v, expected %v", tt.role, got, tt.expected)
		}
	}
}

func TestCanCreateProject(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{models.RoleEmployer, true},
		{models.RoleAdmin, true},
		{models.RoleIdeaCreator, false},
		{models.RoleExecutor, false},
	}

	for _, tt := range tests {
		if got := CanCreateProject(tt.role); got != tt.expected {
			t.Errorf("CanCreateProject(%q) = %v, expected %v", tt.role, got, tt.expected)
		}
	}
}

func TestCanSubmitProposal(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{models.RoleExecutor, true},
		{models.RoleAdmin, true},
		{models.RoleEmployer, false},
		{models.RoleIdeaCreator, false},
	}

	for _, tt := range tests {
		if got := CanSubmitProposal(tt.role); got != tt.expected {
			t.Errorf("CanSubmitProposal(%q) = %v, expected %v", tt.role, got, tt.expected)
		}
	}
}

func TestCanUpdateIdea(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		creatorID uint
		actorID   uint
		expected  bool
	}{
		{"creator updates own idea", models.RoleIdeaCreator, 1, 1, true},
		{"other creator denied", models.RoleIdeaCreator, 1, 2, false},
		{"admin bypasses ownership", models.RoleAdmin, 1, 99, true},
		{"executor denied", models.RoleExecutor, 1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUpdateIdea(tt.role, tt.creatorID, tt.actorID); got != tt.expected {
				t.Errorf("CanUpdateIdea = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCanDecideProposal(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		employerID uint
		actorID    uint
		expected   bool
	}{
		{"owning employer", models.RoleEmployer, 5, 5, true},
		{"other employer", models.RoleEmployer, 5, 6, false},
		{"admin", models.RoleAdmin, 5, 99, true},
		{"executor", models.RoleExecutor, 5, 5, true}, // ownership wins regardless of role
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDecideProposal(tt.role, tt.employerID, tt.actorID); got != tt.expected {
				t.Errorf("CanDecideProposal = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCanAccessProjectFiles(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		employerID uint
		executorID *uint
		actorID    uint
		expected   bool
	}{
		{"employer", models.RoleEmployer, 1, uintPtr(2), 1, true},
		{"assigned executor", models.RoleExecutor, 1, uintPtr(2), 2, true},
		{"unassigned executor", models.RoleExecutor, 1, nil, 2, false},
		{"outsider", models.RoleExecutor, 1, uintPtr(2), 3, false},
		{"admin bypass", models.RoleAdmin, 1, uintPtr(2), 99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessProjectFiles(tt.role, tt.employerID, tt.executorID, tt.actorID)
			if got != tt.expected {
				t.Errorf("CanAccessProjectFiles = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCanMessage_NoAdminBypass(t *testing.T) {
	if CanMessage(1, uintPtr(2), 99) {
		t.Error("non-participant should not be able to message, even admins")
	}
	if !CanMessage(1, uintPtr(2), 1) {
		t.Error("employer should be able to message")
	}
	if !CanMessage(1, uintPtr(2), 2) {
		t.Error("assigned executor should be able to message")
	}
	if CanMessage(1, nil, 2) {
		t.Error("no executor assigned yet, only the employer can message")
	}
}

func TestCanRate(t *testing.T) {
	if !CanRate(1, uintPtr(2), 2) {
		t.Error("executor should be able to rate")
	}
	if CanRate(1, uintPtr(2), 3) {
		t.Error("outsider should not be able to rate")
	}
}

func TestValidRole(t *testing.T) {
	valid := []string{
		models.RoleIdeaCreator,
		models.RoleExecutor,
		models.RoleEmployer,
		models.RoleAdmin,
	}
	for _, role := range valid {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) should be true", role)
		}
	}

	invalid := []string{"", "superuser", "Employer", "idea-creator"}
	for _, role := range invalid {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) should be false", role)
		}
	}
}
