package services

import (
	"testing"
	"time"

	"github.com/masna/backend/internal/models"
	"gorm.io/gorm"
)

func seedProjectAt(t *testing.T, db *gorm.DB, employerID, ideaID uint, status string, createdAt time.Time) *models.Project {
	t.Helper()

	project := models.Project{
		Title:       "Duplicate Project",
		Description: "seeded for reconciliation",
		Status:      status,
		EmployerID:  employerID,
		IdeaID:      &ideaID,
		CreatedAt:   createdAt,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return &project
}

func TestFindDuplicateIdeaIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)

	single := createTestIdea(t, db, creator.ID)
	doubled := createTestIdea(t, db, creator.ID)
	now := time.Now()

	seedProjectAt(t, db, employer.ID, single.ID, models.ProjectStatusNew, now)
	seedProjectAt(t, db, employer.ID, doubled.ID, models.ProjectStatusNew, now)
	seedProjectAt(t, db, employer.ID, doubled.ID, models.ProjectStatusNew, now)
	createTestProject(t, db, employer.ID, nil, models.ProjectStatusNew) // no idea, never counted

	ids, err := svc.FindDuplicateIdeaIDs(db)
	if err != nil {
		t.Fatalf("FindDuplicateIdeaIDs() error = %v", err)
	}

	if len(ids) != 1 || ids[0] != doubled.ID {
		t.Errorf("duplicate idea ids = %v, expected [%d]", ids, doubled.ID)
	}
}

func TestReconcile_SoftKeepLatest(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	older := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	newer := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Survivors[idea.ID] != newer.ID {
		t.Errorf("survivor = %d, expected newest project %d", report.Survivors[idea.ID], newer.ID)
	}
	if report.Modified != 1 {
		t.Errorf("Modified = %d, expected 1", report.Modified)
	}

	var survivor, cancelled models.Project
	db.First(&survivor, newer.ID)
	db.First(&cancelled, older.ID)
	if survivor.Status != models.ProjectStatusNew {
		t.Errorf("survivor status = %q, should be untouched", survivor.Status)
	}
	if cancelled.Status != models.ProjectStatusCancelled {
		t.Errorf("duplicate status = %q, expected cancelled", cancelled.Status)
	}
}

func TestReconcile_KeepOldest(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	older := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepOldest, Mode: ModeSoft})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Survivors[idea.ID] != older.ID {
		t.Errorf("survivor = %d, expected oldest project %d", report.Survivors[idea.ID], older.ID)
	}
}

func TestReconcile_TieBreakByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	// Identical timestamps: the id decides, deterministically.
	at := time.Now().Truncate(time.Second)
	first := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, at)
	second := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, at)

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft, DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Survivors[idea.ID] != second.ID {
		t.Errorf("keep=latest tie: survivor = %d, expected higher id %d", report.Survivors[idea.ID], second.ID)
	}

	report, err = svc.Run(ReconcileOptions{Keep: KeepOldest, Mode: ModeSoft, DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Survivors[idea.ID] != first.ID {
		t.Errorf("keep=oldest tie: survivor = %d, expected lower id %d", report.Survivors[idea.ID], first.ID)
	}
}

func TestReconcile_HardDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	older := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	newer := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeHard})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Modified != 1 {
		t.Errorf("Modified = %d, expected 1", report.Modified)
	}

	// The duplicate row is gone for good, not soft-deleted.
	var count int64
	db.Unscoped().Model(&models.Project{}).Where("id = ?", older.ID).Count(&count)
	if count != 0 {
		t.Error("hard mode should remove the duplicate row entirely")
	}

	db.Model(&models.Project{}).Where("id = ?", newer.ID).Count(&count)
	if count != 1 {
		t.Error("survivor must remain after a hard run")
	}
}

func TestReconcile_SoftSkipsAlreadyCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusCancelled, base)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The only duplicate is already cancelled, so nothing is written.
	if report.Modified != 0 {
		t.Errorf("Modified = %d, expected 0 when duplicates are already cancelled", report.Modified)
	}
	if len(report.Actions) != 0 {
		t.Errorf("Actions = %v, expected none", report.Actions)
	}
}

func TestReconcile_ResetIdeaStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)

	idea := createTestIdea(t, db, creator.ID)
	db.Model(&models.Idea{}).Where("id = ?", idea.ID).Update("status", models.IdeaStatusInProject)

	// Every project for the idea is cancelled, so the idea goes back to
	// review once reconciliation has finished with it.
	base := time.Now().Add(-time.Hour)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusCancelled, base)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusCancelled, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft, ResetIdeaStatus: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var updated models.Idea
	db.First(&updated, idea.ID)
	if updated.Status != models.IdeaStatusUnderReview {
		t.Errorf("idea status = %q, expected under_review", updated.Status)
	}

	found := false
	for _, action := range report.Actions {
		if action.Op == OpResetIdea && action.IdeaID == idea.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("report actions %v should include a reset for idea %d", report.Actions, idea.ID)
	}
}

func TestReconcile_NoResetWhileProjectActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)

	idea := createTestIdea(t, db, creator.ID)
	db.Model(&models.Idea{}).Where("id = ?", idea.ID).Update("status", models.IdeaStatusInProject)

	base := time.Now().Add(-time.Hour)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	if _, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft, ResetIdeaStatus: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The survivor is still active, so the idea stays in_project.
	var updated models.Idea
	db.First(&updated, idea.ID)
	if updated.Status != models.IdeaStatusInProject {
		t.Errorf("idea status = %q, should remain in_project while the survivor is active", updated.Status)
	}
}

func TestReconcile_DryRunLeavesStoreUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	older := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	newer := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeHard, DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The report carries the planned work...
	if report.Modified != 0 {
		t.Errorf("dry-run Modified = %d, expected 0", report.Modified)
	}
	if !report.DryRun {
		t.Error("report should be flagged as dry-run")
	}
	if len(report.Actions) != 1 || report.Actions[0].ProjectID != older.ID {
		t.Errorf("dry-run actions = %v, expected a planned delete of %d", report.Actions, older.ID)
	}

	// ...but the store is exactly as it was.
	var count int64
	db.Model(&models.Project{}).Where("idea_id = ?", idea.ID).Count(&count)
	if count != 2 {
		t.Errorf("project count = %d, dry-run must not modify the store", count)
	}

	var untouched models.Project
	db.First(&untouched, newer.ID)
	if untouched.Status != models.ProjectStatusNew {
		t.Errorf("project status = %q, dry-run must not modify rows", untouched.Status)
	}
}

func TestReconcile_CleanStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)
	seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, time.Now())

	report, err := svc.Run(ReconcileOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.DuplicateIdeaIDs) != 0 {
		t.Errorf("DuplicateIdeaIDs = %v, expected none", report.DuplicateIdeaIDs)
	}
	if report.Modified != 0 {
		t.Errorf("Modified = %d, expected 0", report.Modified)
	}
}

func TestReconcile_Defaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)
	idea := createTestIdea(t, db, creator.ID)

	base := time.Now().Add(-time.Hour)
	older := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base)
	newer := seedProjectAt(t, db, employer.ID, idea.ID, models.ProjectStatusNew, base.Add(time.Minute))

	// Empty options mean keep=latest, mode=soft.
	report, err := svc.Run(ReconcileOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Survivors[idea.ID] != newer.ID {
		t.Errorf("default survivor = %d, expected %d", report.Survivors[idea.ID], newer.ID)
	}

	var cancelled models.Project
	db.First(&cancelled, older.ID)
	if cancelled.Status != models.ProjectStatusCancelled {
		t.Errorf("default mode should soft-cancel, got status %q", cancelled.Status)
	}
}

func TestReconcile_InvalidOptions(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	if _, err := svc.Run(ReconcileOptions{Keep: "newest"}); err == nil {
		t.Error("invalid keep policy should be rejected")
	}
	if _, err := svc.Run(ReconcileOptions{Mode: "purge"}); err == nil {
		t.Error("invalid mode should be rejected")
	}
}

func TestReconcile_MultipleIdeas(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	creator := createTestUser(t, db, models.RoleIdeaCreator)
	employer := createTestUser(t, db, models.RoleEmployer)

	base := time.Now().Add(-time.Hour)
	ideaA := createTestIdea(t, db, creator.ID)
	ideaB := createTestIdea(t, db, creator.ID)

	seedProjectAt(t, db, employer.ID, ideaA.ID, models.ProjectStatusNew, base)
	seedProjectAt(t, db, employer.ID, ideaA.ID, models.ProjectStatusNew, base.Add(time.Minute))
	seedProjectAt(t, db, employer.ID, ideaB.ID, models.ProjectStatusNew, base)
	seedProjectAt(t, db, employer.ID, ideaB.ID, models.ProjectStatusNew, base.Add(time.Minute))
	seedProjectAt(t, db, employer.ID, ideaB.ID, models.ProjectStatusNew, base.Add(2*time.Minute))

	report, err := svc.Run(ReconcileOptions{Keep: KeepLatest, Mode: ModeSoft})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.DuplicateIdeaIDs) != 2 {
		t.Errorf("DuplicateIdeaIDs = %v, expected both ideas", report.DuplicateIdeaIDs)
	}
	if report.Modified != 3 {
		t.Errorf("Modified = %d, expected 3 cancelled duplicates", report.Modified)
	}

	var active int64
	db.Model(&models.Project{}).Where("status <> ?", models.ProjectStatusCancelled).Count(&active)
	if active != 2 {
		t.Errorf("active projects = %d, expected one survivor per idea", active)
	}
}
