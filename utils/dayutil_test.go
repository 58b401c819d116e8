package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2024, 6, 15, 18, 30, 45, 0, loc)
	start := StartOfDay(instant, loc)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, loc), start)
}

func TestStartOfDayConvertsZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:00 UTC on the 14th is already the 15th in Tokyo.
	instant := time.Date(2024, 6, 14, 23, 0, 0, 0, time.UTC)
	start := StartOfDay(instant, tokyo)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, tokyo), start)
}

func TestDayDifferenceSameDay(t *testing.T) {
	loc := time.UTC
	t1 := time.Date(2024, 3, 1, 0, 0, 1, 0, loc)
	t2 := time.Date(2024, 3, 1, 23, 59, 59, 0, loc)

	assert.Equal(t, 0, DayDifference(t1, t2, loc))
	assert.Equal(t, 0, DayDifference(t2, t1, loc))
}

func TestDayDifferenceMidnightBoundary(t *testing.T) {
	loc := time.UTC
	// Committing at 23:50 and checking in at 00:10 is one calendar day, not zero.
	from := time.Date(2024, 3, 1, 23, 50, 0, 0, loc)
	to := time.Date(2024, 3, 2, 0, 10, 0, 0, loc)

	assert.Equal(t, 1, DayDifference(from, to, loc))
}

func TestDayDifferenceElapsedHours(t *testing.T) {
	loc := time.UTC
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, loc)

	assert.Equal(t, 0, DayDifference(start, start.Add(23*time.Hour+59*time.Minute), loc))
	assert.Equal(t, 1, DayDifference(start, start.Add(24*time.Hour), loc))
}

func TestDayDifferenceNegative(t *testing.T) {
	loc := time.UTC
	from := time.Date(2024, 3, 5, 12, 0, 0, 0, loc)
	to := time.Date(2024, 3, 2, 12, 0, 0, 0, loc)

	assert.Equal(t, -3, DayDifference(from, to, loc))
}

func TestDayDifferenceSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is only 23 hours long in New York; it still counts as one day.
	from := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	to := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)

	assert.Equal(t, 1, DayDifference(from, to, loc))
}

func TestDayDifferenceFallBack(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-11-03 is 25 hours long; still exactly one calendar day.
	from := time.Date(2024, 11, 2, 12, 0, 0, 0, loc)
	to := time.Date(2024, 11, 3, 12, 0, 0, 0, loc)

	assert.Equal(t, 1, DayDifference(from, to, loc))
}

func TestDayKeyRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	instant := time.Date(2024, 12, 31, 23, 45, 0, 0, loc)
	key := DayKey(instant, loc)
	assert.Equal(t, "2024-12-31", key)

	parsed, err := ParseDayKey(key, loc)
	require.NoError(t, err)
	assert.Equal(t, StartOfDay(instant, loc), parsed)
}
