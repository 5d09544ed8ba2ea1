package service

import (
	"math"
	"time"
)

// DateOnly truncates t to its calendar date in UTC. All rental arithmetic
// operates on dates; time-of-day never influences duration or price.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the number of whole calendar days between start and
// end with the end date exclusive: a rental from the 5th to the 8th spans
// three days.
func RentalDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

// TotalPrice multiplies the daily rate by the day count, rounded to two
// decimals.
func TotalPrice(dailyRate float64, days int) float64 {
	return math.Round(dailyRate*float64(days)*100) / 100
}
