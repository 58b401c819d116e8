package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/models"
	"github.com/ascent-app/ascent-backend/utils"
)

// StreakService owns the lifecycle of the single active streak per user:
// creation on commitment, idempotent re-validation on every app foreground,
// and closing on relapse or manual reset. Mutations for one user are assumed
// to be serialized by the caller; every write happens inside one transaction
// so readers never observe a half-written streak.
type StreakService struct {
	db *gorm.DB
}

// NewStreakService creates a StreakService bound to the given database.
func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// EnsureStreakIfCommitted returns the user's active streak, creating it when
// the user has signed a commitment but no streak exists yet. Returns (nil, nil)
// when the user never committed. Safe to call arbitrarily often: after the
// first creation every call returns the same record untouched.
func (s *StreakService) EnsureStreakIfCommitted(userID uint) (*models.Streak, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.CommitmentSignedAt == nil {
		return nil, nil
	}

	var result *models.Streak
	err := s.db.Transaction(func(tx *gorm.DB) error {
		active, err := activeStreaks(tx, userID)
		if err != nil {
			return err
		}
		switch len(active) {
		case 1:
			result = &active[0]
			return nil
		case 0:
			streak := models.Streak{
				UserID:      userID,
				StartedAt:   *user.CommitmentSignedAt,
				ResetReason: models.ResetReasonNone,
			}
			if err := tx.Create(&streak).Error; err != nil {
				return &PersistenceError{Op: "create streak", Err: err}
			}
			result = &streak
			return nil
		default:
			return ErrDuplicateActiveStreak
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ActiveStreak returns the user's active streak, or (nil, nil) when none exists.
func (s *StreakService) ActiveStreak(userID uint) (*models.Streak, error) {
	active, err := activeStreaks(s.db, userID)
	if err != nil {
		return nil, err
	}
	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return &active[0], nil
	default:
		return nil, ErrDuplicateActiveStreak
	}
}

// ResetStreak closes the active streak at now with the given reason and opens
// a fresh one starting at now. The closed streak keeps its history; the new
// streak starts with no celebrated milestones.
func (s *StreakService) ResetStreak(userID uint, reason string, now time.Time) (*models.Streak, error) {
	if reason != models.ResetReasonRelapse && reason != models.ResetReasonManual {
		return nil, fmt.Errorf("invalid reset reason %q", reason)
	}

	var fresh *models.Streak
	err := s.db.Transaction(func(tx *gorm.DB) error {
		active, err := activeStreaks(tx, userID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return ErrNoActiveStreak
		}
		if len(active) > 1 {
			return ErrDuplicateActiveStreak
		}

		closed := active[0]
		ended := now
		if err := tx.Model(&models.Streak{}).
			Where("id = ?", closed.ID).
			Updates(map[string]interface{}{
				"ended_at":     &ended,
				"reset_reason": reason,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return &PersistenceError{Op: "close streak", Err: err}
		}

		streak := models.Streak{
			UserID:      userID,
			StartedAt:   now,
			ResetReason: models.ResetReasonNone,
		}
		if err := tx.Create(&streak).Error; err != nil {
			return &PersistenceError{Op: "create replacement streak", Err: err}
		}
		fresh = &streak
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// StreaksForUser returns the user's full streak history, oldest first.
func (s *StreakService) StreaksForUser(userID uint) ([]models.Streak, error) {
	var streaks []models.Streak
	if err := s.db.Where("user_id = ?", userID).Order("started_at ASC").Find(&streaks).Error; err != nil {
		return nil, err
	}
	return streaks, nil
}

// CurrentStreakDays returns the streak's length in whole calendar days at now,
// never negative. A streak started at 23:50 is one day long ten minutes later.
func CurrentStreakDays(streak *models.Streak, now time.Time, loc *time.Location) int {
	if streak == nil {
		return 0
	}
	days := utils.DayDifference(streak.StartedAt, now, loc)
	if days < 0 {
		return 0
	}
	return days
}

// StreakLength returns a streak's length in calendar days: the frozen span for
// closed streaks, the live span for the active one.
func StreakLength(streak *models.Streak, now time.Time, loc *time.Location) int {
	if streak == nil {
		return 0
	}
	if streak.EndedAt != nil {
		days := utils.DayDifference(streak.StartedAt, *streak.EndedAt, loc)
		if days < 0 {
			return 0
		}
		return days
	}
	return CurrentStreakDays(streak, now, loc)
}

// LongestStreakDays returns the maximum length over the user's whole history.
// Closed streaks are immutable, so this never decreases.
func LongestStreakDays(streaks []models.Streak, now time.Time, loc *time.Location) int {
	longest := 0
	for i := range streaks {
		if l := StreakLength(&streaks[i], now, loc); l > longest {
			longest = l
		}
	}
	return longest
}

// TotalCleanDays sums the lengths of all streaks. A reset appends a fresh
// zero-length streak, so the total survives resets and only ever grows.
func TotalCleanDays(streaks []models.Streak, now time.Time, loc *time.Location) int {
	total := 0
	for i := range streaks {
		total += StreakLength(&streaks[i], now, loc)
	}
	return total
}

func activeStreaks(tx *gorm.DB, userID uint) ([]models.Streak, error) {
	var active []models.Streak
	if err := tx.Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at ASC").Find(&active).Error; err != nil {
		return nil, fmt.Errorf("query active streaks: %w", err)
	}
	return active, nil
}

// IsIntegrityError reports whether err is the unrecoverable duplicate-streak
// condition, which callers log loudly instead of retrying.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrDuplicateActiveStreak)
}
