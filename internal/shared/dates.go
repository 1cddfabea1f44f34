package shared

import (
	"fmt"
	"time"
)

// Layouts for the two calendar keys used across the activity collections.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// IST anchors every business date boundary in the system. Reps may be
// anywhere; day and month windows are always Asia/Kolkata.
var IST = mustLoadIST()

func mustLoadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(fmt.Sprintf("shared: load Asia/Kolkata: %v", err))
	}
	return loc
}

// DayKey formats t as the calendar-day key for its IST day.
func DayKey(t time.Time) string {
	return t.In(IST).Format(DateLayout)
}

// MonthKey formats t as the calendar-month key for its IST month.
func MonthKey(t time.Time) string {
	return t.In(IST).Format(MonthLayout)
}

// DayWindow returns the first and last instant of the given calendar day in
// IST. Attendance and visits are keyed by absolute timestamp and must be
// queried through this window; sheet sales and expenses are keyed by the
// calendar string itself and must not be.
func DayWindow(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, IST)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	end := start.Add(24*time.Hour - time.Second)
	return start, end, nil
}

// MonthWindow returns the first instant of day one and the last instant of
// the final day of the given month, in IST.
func MonthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(MonthLayout, month, IST)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// MonthDayRange returns the first and last calendar-day strings of the month,
// for inclusive string-range queries against date-keyed collections.
func MonthDayRange(month string) (string, string, error) {
	start, err := time.ParseInLocation(MonthLayout, month, IST)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	last := start.AddDate(0, 1, -1)
	return start.Format(DateLayout), last.Format(DateLayout), nil
}

// PrevMonthKey returns the month immediately before the given YYYY-MM key.
func PrevMonthKey(month string) (string, error) {
	start, err := time.ParseInLocation(MonthLayout, month, IST)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return start.AddDate(0, -1, 0).Format(MonthLayout), nil
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.ParseInLocation(DateLayout, date, IST)
	return err == nil
}

// ValidMonth reports whether month is a well-formed YYYY-MM string.
func ValidMonth(month string) bool {
	_, err := time.ParseInLocation(MonthLayout, month, IST)
	return err == nil
}
