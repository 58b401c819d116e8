package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/models"
	"github.com/ascent-app/ascent-backend/utils"
)

// CheckInInput carries one daily self-assessment submission. All five ratings
// must be in [1,10]; the reflections are optional free text.
type CheckInInput struct {
	Mood        int    `json:"mood"`
	Energy      int    `json:"energy"`
	Confidence  int    `json:"confidence"`
	Faith       int    `json:"faith"`
	SelfControl int    `json:"self_control"`
	Gratitude   string `json:"gratitude"`
	Struggle    string `json:"struggle"`
	Victory     string `json:"victory"`
	StayedClean *bool  `json:"stayed_clean"`
}

// CheckinService enforces one logical check-in per calendar day per user.
// Submission is an upsert keyed by (user, day): a second submission on the
// same day overwrites the first in place, it never duplicates.
type CheckinService struct {
	db *gorm.DB
}

// NewCheckinService creates a CheckinService bound to the given database.
func NewCheckinService(db *gorm.DB) *CheckinService {
	return &CheckinService{db: db}
}

// SubmitCheckIn validates and stores the check-in for now's calendar day in
// the user's timezone. Validation failures reject before any write.
func (s *CheckinService) SubmitCheckIn(user *models.User, in CheckInInput, now time.Time) (*models.CheckIn, error) {
	for _, r := range [5]int{in.Mood, in.Energy, in.Confidence, in.Faith, in.SelfControl} {
		if r < 1 || r > 10 {
			return nil, ErrInvalidRatingRange
		}
	}

	loc := user.Location()
	day := utils.DayKey(now, loc)

	stayedClean := true
	if in.StayedClean != nil {
		stayedClean = *in.StayedClean
	}

	var result *models.CheckIn
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CheckIn
		err := tx.Where("user_id = ? AND day = ?", user.ID, day).First(&existing).Error
		switch {
		case err == nil:
			existing.Date = now
			existing.Mood = in.Mood
			existing.Energy = in.Energy
			existing.Confidence = in.Confidence
			existing.Faith = in.Faith
			existing.SelfControl = in.SelfControl
			existing.Gratitude = utils.Sanitize(in.Gratitude)
			existing.Struggle = utils.Sanitize(in.Struggle)
			existing.Victory = utils.Sanitize(in.Victory)
			existing.StayedClean = stayedClean
			if err := tx.Save(&existing).Error; err != nil {
				return &PersistenceError{Op: "update check-in", Err: err}
			}
			result = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := models.CheckIn{
				UserID:      user.ID,
				Day:         day,
				Date:        now,
				Mood:        in.Mood,
				Energy:      in.Energy,
				Confidence:  in.Confidence,
				Faith:       in.Faith,
				SelfControl: in.SelfControl,
				Gratitude:   utils.Sanitize(in.Gratitude),
				Struggle:    utils.Sanitize(in.Struggle),
				Victory:     utils.Sanitize(in.Victory),
				StayedClean: stayedClean,
			}
			if err := tx.Create(&record).Error; err != nil {
				return &PersistenceError{Op: "create check-in", Err: err}
			}
			result = &record
			return nil
		default:
			return fmt.Errorf("lookup check-in: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCheckIn looks up the canonical check-in for a day key, (nil, nil) when absent.
func (s *CheckinService) GetCheckIn(userID uint, day string) (*models.CheckIn, error) {
	var record models.CheckIn
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// HasCheckedInToday reports whether a check-in exists for now's calendar day.
func (s *CheckinService) HasCheckedInToday(user *models.User, now time.Time) (bool, error) {
	record, err := s.GetCheckIn(user.ID, utils.DayKey(now, user.Location()))
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// CountCheckinsInRange counts canonical check-in days in [fromDay, toDay].
// Day keys sort lexicographically, so a string BETWEEN is a date BETWEEN.
func (s *CheckinService) CountCheckinsInRange(userID uint, fromDay, toDay string) (int64, error) {
	var count int64
	err := s.db.Model(&models.CheckIn{}).
		Where("user_id = ? AND day BETWEEN ? AND ?", userID, fromDay, toDay).
		Count(&count).Error
	return count, err
}

// CheckinsInRange returns the check-ins in [fromDay, toDay] ascending by day,
// feeding the calendar screen. Check-ins predating the active streak are
// included here; they are history, not an integrity error.
func (s *CheckinService) CheckinsInRange(userID uint, fromDay, toDay string) ([]models.CheckIn, error) {
	var records []models.CheckIn
	err := s.db.Where("user_id = ? AND day BETWEEN ? AND ?", userID, fromDay, toDay).
		Order("day ASC").Find(&records).Error
	return records, err
}
