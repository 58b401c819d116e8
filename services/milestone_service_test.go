package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-app/ascent-backend/models"
)

func TestCatalogOrderedAndComplete(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	wantDays := []int{0, 1, 3, 7, 14, 30, 50, 60, 75, 90, 120, 150, 270, 365}
	require.Len(t, catalog, len(wantDays))
	for i, def := range catalog {
		assert.Equal(t, wantDays[i], def.Day)
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Meaning)
	}
}

func TestReachedMilestones(t *testing.T) {
	reached := ReachedMilestones(3)
	require.Len(t, reached, 3)
	assert.Equal(t, 0, reached[0].Day)
	assert.Equal(t, 1, reached[1].Day)
	assert.Equal(t, 3, reached[2].Day)

	assert.Len(t, ReachedMilestones(-1), 0)
	assert.Len(t, ReachedMilestones(400), len(Catalog()))
}

func TestHighestReached(t *testing.T) {
	def, ok := HighestReached(5)
	require.True(t, ok)
	assert.Equal(t, 3, def.Day)

	_, ok = HighestReached(-1)
	assert.False(t, ok)
}

func TestMilestoneByDay(t *testing.T) {
	def, ok := MilestoneByDay(7)
	require.True(t, ok)
	assert.Equal(t, "One Week Strong", def.Title)

	_, ok = MilestoneByDay(2)
	assert.False(t, ok)
}

func TestPendingCelebrationHighestOnly(t *testing.T) {
	svc := NewMilestoneService(newTestDB(t), nil)
	streak := &models.Streak{LastCelebratedMilestoneDay: 0}

	// Days jumped past 1 and 3 at once: only day 3 is surfaced.
	pending := svc.PendingCelebration(streak, 3)
	require.NotNil(t, pending)
	assert.Equal(t, 3, pending.Day)
}

func TestPendingCelebrationNilCases(t *testing.T) {
	svc := NewMilestoneService(newTestDB(t), nil)

	assert.Nil(t, svc.PendingCelebration(nil, 10))
	assert.Nil(t, svc.PendingCelebration(&models.Streak{LastCelebratedMilestoneDay: 7}, 7))
	assert.Nil(t, svc.PendingCelebration(&models.Streak{}, -1))
}

func TestMarkCelebratedExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	user := newTestUser(t, db, timePtr(now.AddDate(0, 0, -7)))
	streaks := NewStreakService(db)
	svc := NewMilestoneService(db, NopMilestoneNotifier{})

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)
	days := CurrentStreakDays(streak, now, time.UTC)
	require.Equal(t, 7, days)

	// Pending stays the same until celebrated.
	for i := 0; i < 5; i++ {
		pending := svc.PendingCelebration(streak, days)
		require.NotNil(t, pending)
		assert.Equal(t, 7, pending.Day)
	}

	require.NoError(t, svc.MarkCelebrated(streak.ID, 7))

	var reloaded models.Streak
	require.NoError(t, db.First(&reloaded, streak.ID).Error)
	assert.Equal(t, 7, reloaded.LastCelebratedMilestoneDay)
	assert.Nil(t, svc.PendingCelebration(&reloaded, days))

	// A second celebration of the same day is a harmless no-op.
	require.NoError(t, svc.MarkCelebrated(streak.ID, 7))
}

func TestMarkCelebratedMonotonic(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, timePtr(time.Now().AddDate(0, 0, -30)))
	streaks := NewStreakService(db)
	svc := NewMilestoneService(db, NopMilestoneNotifier{})

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkCelebrated(streak.ID, 14))
	// Replaying a lower threshold never moves the watermark backwards.
	require.NoError(t, svc.MarkCelebrated(streak.ID, 3))

	var reloaded models.Streak
	require.NoError(t, db.First(&reloaded, streak.ID).Error)
	assert.Equal(t, 14, reloaded.LastCelebratedMilestoneDay)
}

func TestMarkCelebratedRejectsUnreachedDay(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	user := newTestUser(t, db, timePtr(now.AddDate(0, 0, -1)))
	streaks := NewStreakService(db)
	svc := NewMilestoneService(db, NopMilestoneNotifier{})

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)

	// A day-1 streak cannot celebrate the one-year milestone, however valid
	// the catalog day is.
	assert.ErrorIs(t, svc.MarkCelebrated(streak.ID, 365), ErrMilestoneNotReached)

	// The watermark is untouched, so the day-1 celebration is still pending.
	var reloaded models.Streak
	require.NoError(t, db.First(&reloaded, streak.ID).Error)
	assert.Equal(t, 0, reloaded.LastCelebratedMilestoneDay)

	pending := svc.PendingCelebration(&reloaded, 1)
	require.NotNil(t, pending)
	assert.Equal(t, 1, pending.Day)

	// The frontier itself is fine to celebrate.
	require.NoError(t, svc.MarkCelebrated(streak.ID, 1))
}

func TestMarkCelebratedUnknownDay(t *testing.T) {
	svc := NewMilestoneService(newTestDB(t), nil)
	assert.ErrorIs(t, svc.MarkCelebrated(1, 2), ErrUnknownMilestoneDay)
}

func TestMarkCelebratedClosedStreak(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, timePtr(time.Now().AddDate(0, 0, -10)))
	streaks := NewStreakService(db)
	svc := NewMilestoneService(db, NopMilestoneNotifier{})

	streak, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)
	_, err = streaks.ResetStreak(user.ID, models.ResetReasonManual, time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkCelebrated(streak.ID, 7), ErrNoActiveStreak)
}
