package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/masna/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDBSeq   atomic.Int64
	testUserSeq atomic.Int64
)

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own named database so parallel tests cannot see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Idea{},
		&models.Project{},
		&models.Proposal{},
		&models.Message{},
		&models.Rating{},
		&models.FileUpload{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := models.User{
		Email:          fmt.Sprintf("user%d@example.com", testUserSeq.Add(1)),
		HashedPassword: "not-a-real-hash",
		FullName:       "Test User",
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestIdea(t *testing.T, db *gorm.DB, creatorID uint) *models.Idea {
	t.Helper()

	idea := models.Idea{
		Title:       "Test Idea",
		Description: "An idea used in tests",
		Status:      models.IdeaStatusUnderReview,
		CreatorID:   creatorID,
	}
	if err := db.Create(&idea).Error; err != nil {
		t.Fatalf("failed to create test idea: %v", err)
	}
	return &idea
}

func createTestProject(t *testing.T, db *gorm.DB, employerID uint, ideaID *uint, status string) *models.Project {
	t.Helper()

	project := models.Project{
		Title:       "Test Project",
		Description: "A project used in tests",
		Status:      status,
		EmployerID:  employerID,
		IdeaID:      ideaID,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return &project
}

func asActor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
