// utils/dates.go
package utils

import (
	"math"
	"time"
)

const Day = 24 * time.Hour

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of days from start to end, rounded up.
// A deadline one hour away counts as one day; one that passed an hour ago counts as zero.
func DaysUntil(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}
