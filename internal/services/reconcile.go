package services

import (
	"fmt"

	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/models"
	"github.com/masna/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// KeepPolicy selects which project survives when several reference one idea.
type KeepPolicy string

const (
	KeepLatest KeepPolicy = "latest"
	KeepOldest KeepPolicy = "oldest"
)

// ReconcileMode selects how duplicate projects are resolved.
type ReconcileMode string

const (
	ModeSoft ReconcileMode = "soft" // mark duplicates cancelled
	ModeHard ReconcileMode = "hard" // remove duplicate rows permanently
)

// Reconcile action ops
const (
	OpCancel    = "cancel"
	OpDelete    = "delete"
	OpResetIdea = "reset_idea"
)

type ReconcileOptions struct {
	Keep            KeepPolicy    `json:"keep"`
	Mode            ReconcileMode `json:"mode"`
	ResetIdeaStatus bool          `json:"reset_idea_status"`
	DryRun          bool          `json:"dry_run"`
}

// ReconcileAction is one decision taken (or planned, in dry-run) during a run.
type ReconcileAction struct {
	IdeaID    uint   `json:"idea_id"`
	ProjectID uint   `json:"project_id,omitempty"`
	Op        string `json:"op"`
}

type ReconcileReport struct {
	DuplicateIdeaIDs []uint            `json:"duplicate_idea_ids"`
	Survivors        map[uint]uint     `json:"survivors"` // idea_id -> surviving project id
	Actions          []ReconcileAction `json:"actions"`
	Modified         int               `json:"modified"`
	DryRun           bool              `json:"dry_run"`
}

// ReconcileService detects and repairs ideas referenced by more than one
// project. The write-path idempotency guard in ProjectService.Derive cannot
// exclude concurrent creations, so this runs out-of-band against the store.
type ReconcileService struct {
	db *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{db: db}
}

// FindDuplicateIdeaIDs returns idea ids referenced by more than one project,
// regardless of project status.
func (s *ReconcileService) FindDuplicateIdeaIDs(tx *gorm.DB) ([]uint, error) {
	var ids []uint
	err := tx.Model(&models.Project{}).
		Select("idea_id").
		Where("idea_id IS NOT NULL").
		Group("idea_id").
		Having("COUNT(id) > 1").
		Order("idea_id").
		Pluck("idea_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Run executes one reconciliation pass. Everything happens in a single
// transaction; in dry-run the transaction is rolled back and the report
// carries the planned actions with Modified forced to zero.
func (s *ReconcileService) Run(opts ReconcileOptions) (*ReconcileReport, error) {
	if opts.Keep == "" {
		opts.Keep = KeepLatest
	}
	if opts.Mode == "" {
		opts.Mode = ModeSoft
	}
	if opts.Keep != KeepLatest && opts.Keep != KeepOldest {
		return nil, fmt.Errorf("invalid keep policy: %s", opts.Keep)
	}
	if opts.Mode != ModeSoft && opts.Mode != ModeHard {
		return nil, fmt.Errorf("invalid mode: %s", opts.Mode)
	}

	report := &ReconcileReport{
		Survivors: make(map[uint]uint),
		DryRun:    opts.DryRun,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		// Safety net for early returns; Commit/Rollback below make this a no-op.
		tx.Rollback()
	}()

	ideaIDs, err := s.FindDuplicateIdeaIDs(tx)
	if err != nil {
		return nil, err
	}
	report.DuplicateIdeaIDs = ideaIDs

	modified := 0
	for _, ideaID := range ideaIDs {
		order := "created_at DESC, id DESC"
		if opts.Keep == KeepOldest {
			order = "created_at ASC, id ASC"
		}

		var projects []models.Project
		if err := tx.Where("idea_id = ?", ideaID).Order(order).Find(&projects).Error; err != nil {
			return nil, err
		}
		if len(projects) <= 1 {
			continue
		}

		survivor := projects[0]
		report.Survivors[ideaID] = survivor.ID

		for _, dup := range projects[1:] {
			switch opts.Mode {
			case ModeHard:
				if err := tx.Unscoped().Delete(&models.Project{}, dup.ID).Error; err != nil {
					return nil, err
				}
				modified++
				report.Actions = append(report.Actions, ReconcileAction{IdeaID: ideaID, ProjectID: dup.ID, Op: OpDelete})
			case ModeSoft:
				if dup.Status == models.ProjectStatusCancelled {
					continue
				}
				err := tx.Model(&models.Project{}).
					Where("id = ?", dup.ID).
					Update("status", models.ProjectStatusCancelled).Error
				if err != nil {
					return nil, err
				}
				modified++
				report.Actions = append(report.Actions, ReconcileAction{IdeaID: ideaID, ProjectID: dup.ID, Op: OpCancel})
			}
		}

		if opts.ResetIdeaStatus {
			reset, err := s.repairIdeaStatus(tx, ideaID)
			if err != nil {
				return nil, err
			}
			if reset {
				report.Actions = append(report.Actions, ReconcileAction{IdeaID: ideaID, Op: OpResetIdea})
			}
		}
	}

	if opts.DryRun {
		tx.Rollback()
		report.Modified = 0
		return report, nil
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	report.Modified = modified
	return report, nil
}

// repairIdeaStatus resets an idea back to under_review when no non-cancelled
// project references it anymore. Inverse of the in_project transition made by
// ProjectService.Derive.
func (s *ReconcileService) repairIdeaStatus(tx *gorm.DB, ideaID uint) (bool, error) {
	var remaining int64
	err := tx.Model(&models.Project{}).
		Where("idea_id = ? AND status <> ?", ideaID, models.ProjectStatusCancelled).
		Count(&remaining).Error
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	result := tx.Model(&models.Idea{}).
		Where("id = ? AND status <> ?", ideaID, models.IdeaStatusUnderReview).
		Update("status", models.IdeaStatusUnderReview)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// StartReconcileScheduler runs reconciliation on the configured cron
// schedule. Returns nil when no schedule is configured; the cleanup then only
// runs via the admin endpoint or the reconcile CLI. Scheduled runs are meant
// for a maintenance window: reconciliation should not race live traffic on
// the same ideas.
func StartReconcileScheduler(db *gorm.DB, cfg *config.ReconcileConfig) *cron.Cron {
	if cfg.Schedule == "" {
		return nil
	}

	service := NewReconcileService(db)
	opts := ReconcileOptions{
		Keep:            KeepPolicy(cfg.Keep),
		Mode:            ReconcileMode(cfg.Mode),
		ResetIdeaStatus: cfg.ResetIdeaStatus,
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Schedule, func() {
		report, err := service.Run(opts)
		if err != nil {
			logger.Error().Err(err).Msg("scheduled reconciliation failed")
			return
		}
		logger.Info().
			Int("duplicate_ideas", len(report.DuplicateIdeaIDs)).
			Int("modified", report.Modified).
			Msg("scheduled reconciliation finished")
	})
	if err != nil {
		logger.Error().Err(err).Str("schedule", cfg.Schedule).Msg("invalid reconcile schedule")
		return nil
	}

	c.Start()
	logger.Infof("[Reconcile] Scheduler started with schedule %q", cfg.Schedule)
	return c
}
