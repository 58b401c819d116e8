package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/models"
)

// MilestoneService detects threshold crossings for the active streak and
// records celebrations exactly once. Within one streak a milestone only moves
// forward: locked, reached, celebrated. A new streak starts all-locked again
// because it begins with LastCelebratedMilestoneDay zero.
type MilestoneService struct {
	db       *gorm.DB
	notifier MilestoneNotifier
}

// NewMilestoneService creates a MilestoneService with the given notifier.
func NewMilestoneService(db *gorm.DB, notifier MilestoneNotifier) *MilestoneService {
	if notifier == nil {
		notifier = NopMilestoneNotifier{}
	}
	return &MilestoneService{db: db, notifier: notifier}
}

// PendingCelebration returns the milestone that should be celebrated now, or
// nil. When several thresholds were crossed since the last evaluation (app
// unopened for weeks) only the single highest newly reached one is surfaced;
// the skipped lower thresholds are not celebrated individually.
func (m *MilestoneService) PendingCelebration(streak *models.Streak, currentStreakDays int) *MilestoneDefinition {
	if streak == nil {
		return nil
	}
	latest, ok := HighestReached(currentStreakDays)
	if !ok {
		return nil
	}
	if latest.Day <= streak.LastCelebratedMilestoneDay {
		return nil
	}
	return &latest
}

// MarkCelebrated advances the streak's celebration watermark to milestoneDay
// and persists it. The watermark is monotonic: calls with an already
// celebrated or lower day are no-ops, which makes repeated invocations from
// UI lifecycle hooks harmless. Only a day the streak has actually reached can
// be celebrated. The notifier is informed only after the write committed, and
// only for an actual advance.
func (m *MilestoneService) MarkCelebrated(streakID uint, milestoneDay int) error {
	def, ok := MilestoneByDay(milestoneDay)
	if !ok {
		return ErrUnknownMilestoneDay
	}

	var advanced bool
	var userID uint
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var streak models.Streak
		if err := tx.First(&streak, streakID).Error; err != nil {
			return fmt.Errorf("load streak: %w", err)
		}
		if !streak.Active() {
			return ErrNoActiveStreak
		}
		if milestoneDay <= streak.LastCelebratedMilestoneDay {
			return nil
		}
		var user models.User
		if err := tx.First(&user, streak.UserID).Error; err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if milestoneDay > CurrentStreakDays(&streak, time.Now(), user.Location()) {
			return ErrMilestoneNotReached
		}
		if err := tx.Model(&models.Streak{}).
			Where("id = ?", streak.ID).
			Updates(map[string]interface{}{
				"last_celebrated_milestone_day": milestoneDay,
				"updated_at":                    time.Now(),
			}).Error; err != nil {
			return &PersistenceError{Op: "record celebration", Err: err}
		}
		advanced = true
		userID = streak.UserID
		return nil
	})
	if err != nil {
		return err
	}

	if advanced {
		go m.notifier.Notify(userID, def.Day, def.Title, def.Meaning)
	}
	return nil
}
