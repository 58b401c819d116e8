package services

import (
	"time"

	"github.com/ascent-app/ascent-backend/models"
	"github.com/ascent-app/ascent-backend/utils"
)

// HomeStats is the read-only snapshot every screen renders from. It is derived
// on demand from the streak and check-in history, never persisted.
type HomeStats struct {
	CurrentStreakDays          int        `json:"current_streak_days"`
	LongestStreakDays          int        `json:"longest_streak_days"`
	TotalCleanDays             int        `json:"total_clean_days"`
	HasCheckedInToday          bool       `json:"has_checked_in_today"`
	CheckinsThisWeek           int        `json:"checkins_this_week"`
	JournalEntriesThisWeek     int        `json:"journal_entries_this_week"`
	LastCelebratedMilestoneDay int        `json:"last_celebrated_milestone_day"`
	CommitmentDate             *time.Time `json:"commitment_date"`
}

// StatsService composes the streak lifecycle, check-in ledger and milestone
// state into HomeStats. It is a projection with no persistence of its own.
type StatsService struct {
	streaks  *StreakService
	checkins *CheckinService
}

// NewStatsService creates a StatsService over the two underlying services.
func NewStatsService(streaks *StreakService, checkins *CheckinService) *StatsService {
	return &StatsService{streaks: streaks, checkins: checkins}
}

// HomeStats builds the snapshot for the user at now. A user who never
// committed gets zeroes for every streak-derived field; whether today's
// check-in happened is evaluated either way.
func (s *StatsService) HomeStats(user *models.User, now time.Time) (*HomeStats, error) {
	loc := user.Location()
	stats := &HomeStats{CommitmentDate: user.CommitmentSignedAt}

	checkedIn, err := s.checkins.HasCheckedInToday(user, now)
	if err != nil {
		return nil, err
	}
	stats.HasCheckedInToday = checkedIn

	// Rolling seven-day window ending today, in the user's timezone.
	today := utils.StartOfDay(now, loc)
	weekStart := today.AddDate(0, 0, -6)
	fromDay := utils.DayKey(weekStart, loc)
	toDay := utils.DayKey(now, loc)

	weekCheckins, err := s.checkins.CheckinsInRange(user.ID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	stats.CheckinsThisWeek = len(weekCheckins)
	for i := range weekCheckins {
		if weekCheckins[i].HasReflection() {
			stats.JournalEntriesThisWeek++
		}
	}

	active, err := s.streaks.EnsureStreakIfCommitted(user.ID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return stats, nil
	}

	stats.CurrentStreakDays = CurrentStreakDays(active, now, loc)
	stats.LastCelebratedMilestoneDay = active.LastCelebratedMilestoneDay

	history, err := s.streaks.StreaksForUser(user.ID)
	if err != nil {
		return nil, err
	}
	stats.LongestStreakDays = LongestStreakDays(history, now, loc)
	stats.TotalCleanDays = TotalCleanDays(history, now, loc)

	return stats, nil
}
