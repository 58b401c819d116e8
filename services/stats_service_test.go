package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-app/ascent-backend/models"
)

func TestHomeStatsNeverCommitted(t *testing.T) {
	db := newTestDB(t)
	streaks := NewStreakService(db)
	checkins := NewCheckinService(db)
	stats := NewStatsService(streaks, checkins)
	user := newTestUser(t, db, nil)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	// Checking in works before any commitment exists.
	_, err := checkins.SubmitCheckIn(user, validInput(), now)
	require.NoError(t, err)

	got, err := stats.HomeStats(user, now)
	require.NoError(t, err)

	assert.Zero(t, got.CurrentStreakDays)
	assert.Zero(t, got.LongestStreakDays)
	assert.Zero(t, got.TotalCleanDays)
	assert.Zero(t, got.LastCelebratedMilestoneDay)
	assert.Nil(t, got.CommitmentDate)
	assert.True(t, got.HasCheckedInToday)
	assert.Equal(t, 1, got.CheckinsThisWeek)
}

func TestHomeStatsCommitThreeDays(t *testing.T) {
	db := newTestDB(t)
	streaks := NewStreakService(db)
	checkins := NewCheckinService(db)
	milestones := NewMilestoneService(db, NopMilestoneNotifier{})
	stats := NewStatsService(streaks, checkins)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	committed := now.AddDate(0, 0, -3)
	user := newTestUser(t, db, timePtr(committed))

	got, err := stats.HomeStats(user, now)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreakDays)
	assert.Equal(t, 3, got.LongestStreakDays)
	assert.Equal(t, 3, got.TotalCleanDays)
	assert.False(t, got.HasCheckedInToday)
	require.NotNil(t, got.CommitmentDate)

	// No check-ins for three days: day-1 and day-3 are both reached, but only
	// day-3 is surfaced for celebration.
	reached := ReachedMilestones(got.CurrentStreakDays)
	days := make([]int, len(reached))
	for i, def := range reached {
		days[i] = def.Day
	}
	assert.Equal(t, []int{0, 1, 3}, days)

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)
	pending := milestones.PendingCelebration(streak, got.CurrentStreakDays)
	require.NotNil(t, pending)
	assert.Equal(t, 3, pending.Day)
}

func TestHomeStatsAfterRelapse(t *testing.T) {
	db := newTestDB(t)
	streaks := NewStreakService(db)
	checkins := NewCheckinService(db)
	milestones := NewMilestoneService(db, NopMilestoneNotifier{})
	stats := NewStatsService(streaks, checkins)

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	committed := now.AddDate(0, 0, -10)
	user := newTestUser(t, db, timePtr(committed))

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)
	require.NoError(t, milestones.MarkCelebrated(streak.ID, 7))

	_, err = streaks.ResetStreak(user.ID, models.ResetReasonRelapse, now)
	require.NoError(t, err)

	got, err := stats.HomeStats(user, now)
	require.NoError(t, err)

	assert.Equal(t, 0, got.CurrentStreakDays)
	assert.GreaterOrEqual(t, got.TotalCleanDays, 10)
	assert.GreaterOrEqual(t, got.LongestStreakDays, 10)
	// The fresh streak has celebrated nothing.
	assert.Equal(t, 0, got.LastCelebratedMilestoneDay)
}

func TestHomeStatsWeeklyWindow(t *testing.T) {
	db := newTestDB(t)
	streaks := NewStreakService(db)
	checkins := NewCheckinService(db)
	stats := NewStatsService(streaks, checkins)

	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
	user := newTestUser(t, db, timePtr(now.AddDate(0, 0, -30)))

	// Three check-ins inside the rolling week, one with a reflection.
	withNote := validInput()
	withNote.Gratitude = "a good walk"
	_, err := checkins.SubmitCheckIn(user, withNote, now)
	require.NoError(t, err)
	_, err = checkins.SubmitCheckIn(user, validInput(), now.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, err = checkins.SubmitCheckIn(user, validInput(), now.AddDate(0, 0, -6))
	require.NoError(t, err)

	// One just outside the window.
	_, err = checkins.SubmitCheckIn(user, validInput(), now.AddDate(0, 0, -7))
	require.NoError(t, err)

	got, err := stats.HomeStats(user, now)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CheckinsThisWeek)
	assert.Equal(t, 1, got.JournalEntriesThisWeek)
	assert.True(t, got.HasCheckedInToday)
}

func TestHomeStatsEnsuresStreakOnce(t *testing.T) {
	db := newTestDB(t)
	streaks := NewStreakService(db)
	checkins := NewCheckinService(db)
	stats := NewStatsService(streaks, checkins)

	now := time.Now()
	user := newTestUser(t, db, timePtr(now.Add(-time.Hour)))

	// Repeated foreground refreshes never create extra streaks.
	for i := 0; i < 10; i++ {
		_, err := stats.HomeStats(user, now)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Streak{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
