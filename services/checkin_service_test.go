package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-app/ascent-backend/models"
)

func validInput() CheckInInput {
	return CheckInInput{Mood: 7, Energy: 6, Confidence: 8, Faith: 9, SelfControl: 5}
}

func TestSubmitCheckInCreates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	now := time.Date(2024, 5, 2, 21, 15, 0, 0, time.UTC)
	in := validInput()
	in.Gratitude = "made it through the evening"

	record, err := svc.SubmitCheckIn(user, in, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", record.Day)
	assert.Equal(t, [5]int{7, 6, 8, 9, 5}, record.Ratings())
	assert.True(t, record.StayedClean)
	assert.True(t, record.HasReflection())
}

func TestSubmitCheckInTwiceOverwrites(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	now := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	first, err := svc.SubmitCheckIn(user, validInput(), now)
	require.NoError(t, err)

	second := validInput()
	second.Mood = 3
	second.Struggle = "rough afternoon"
	clean := false
	second.StayedClean = &clean

	updated, err := svc.SubmitCheckIn(user, second, now.Add(10*time.Hour))
	require.NoError(t, err)

	// Same logical record, second submission's values.
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, 3, updated.Mood)
	assert.Equal(t, "rough afternoon", updated.Struggle)
	assert.False(t, updated.StayedClean)

	var count int64
	require.NoError(t, db.Model(&models.CheckIn{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitCheckInRejectsBadRatings(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	for _, bad := range []int{0, -1, 11} {
		in := validInput()
		in.Faith = bad
		_, err := svc.SubmitCheckIn(user, in, time.Now())
		assert.ErrorIs(t, err, ErrInvalidRatingRange)
	}

	// Rejected before any write.
	var count int64
	require.NoError(t, db.Model(&models.CheckIn{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitCheckInSanitizesReflections(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	in := validInput()
	in.Victory = `<script>alert("x")</script>stayed strong`

	record, err := svc.SubmitCheckIn(user, in, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "stayed strong", record.Victory)
}

func TestHasCheckedInToday(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	got, err := svc.HasCheckedInToday(user, now)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = svc.SubmitCheckIn(user, validInput(), now)
	require.NoError(t, err)

	got, err = svc.HasCheckedInToday(user, now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.True(t, got)

	// The next calendar day starts over.
	got, err = svc.HasCheckedInToday(user, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCheckinsInRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 1, 3, 9} {
		_, err := svc.SubmitCheckIn(user, validInput(), base.AddDate(0, 0, offset))
		require.NoError(t, err)
	}

	count, err := svc.CountCheckinsInRange(user.ID, "2024-05-01", "2024-05-04")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	records, err := svc.CheckinsInRange(user.ID, "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2024-05-01", records[0].Day)
	assert.Equal(t, "2024-05-10", records[3].Day)
}

func TestGetCheckInMissing(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, nil)
	svc := NewCheckinService(db)

	record, err := svc.GetCheckIn(user.ID, "2024-01-01")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCheckInBeforeStreakStartIsKept(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	user := newTestUser(t, db, timePtr(now))
	streaks := NewStreakService(db)
	svc := NewCheckinService(db)

	_, err := streaks.EnsureStreakIfCommitted(user.ID)
	require.NoError(t, err)

	// Historical check-in from before the commitment stays on record.
	record, err := svc.SubmitCheckIn(user, validInput(), now.AddDate(0, 0, -5))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-05", record.Day)
}
