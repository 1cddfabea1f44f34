package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindowIST(t *testing.T) {
	start, end, err := DayWindow("2025-03-14")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, IST), start)
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 0, IST), end)

	// 00:00 IST is 18:30 UTC the previous day.
	assert.Equal(t, time.Date(2025, 3, 13, 18, 30, 0, 0, time.UTC), start.UTC())
}

func TestDayWindowRejectsMalformedDate(t *testing.T) {
	for _, input := range []string{"", "2025-3-14", "14-03-2025", "2025-03-14T00:00:00Z", "2025-13-01"} {
		_, _, err := DayWindow(input)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow("2025-02")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, IST), start)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, IST), end)
}

func TestMonthDayRange(t *testing.T) {
	first, last, err := MonthDayRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", first)
	assert.Equal(t, "2024-02-29", last)

	first, last, err = MonthDayRange("2025-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", first)
	assert.Equal(t, "2025-12-31", last)
}

func TestPrevMonthKeyAcrossYearBoundary(t *testing.T) {
	prev, err := PrevMonthKey("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", prev)

	prev, err = PrevMonthKey("2025-07")
	require.NoError(t, err)
	assert.Equal(t, "2025-06", prev)

	_, err = PrevMonthKey("2025")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestDayAndMonthKeysUseIST(t *testing.T) {
	// 20:00 UTC on March 31 is already April 1 in IST.
	instant := time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-04-01", DayKey(instant))
	assert.Equal(t, "2025-04", MonthKey(instant))
}
