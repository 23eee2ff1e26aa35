// Package calendar holds the date arithmetic shared by the journal, the store
// and the placement engine. Functions work in the location of their input,
// except Normalize, which converts to local time.
package calendar

import (
	"time"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time { return time.Now() }

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string { return t.Format("2006-01-02") }

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Normalize returns t in local time truncated to whole seconds, the precision
// entry dates are persisted at.
func Normalize(t time.Time) time.Time { return t.Local().Truncate(time.Second) }

// DaysInMonth returns the number of days in the month (1-12) of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidMonth reports whether month is in 1..12.
func ValidMonth(month int) bool { return month >= 1 && month <= 12 }

// Grid lays the month out as calendar rows starting on Sunday. Leading cells
// before the first of the month are zero; every other cell is a day number.
func Grid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	days := DaysInMonth(year, month)

	var rows [][]int
	row := make([]int, 0, 7)
	for i := 0; i < int(first); i++ {
		row = append(row, 0)
	}
	for d := 1; d <= days; d++ {
		row = append(row, d)
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]int, 0, 7)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
