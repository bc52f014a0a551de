package workdays

import "time"

// IsWorkingDay reports whether date falls on a working day.
// Saturdays and Sundays are non-working; holidays are not considered.
func IsWorkingDay(date time.Time) bool {
	day := date.Weekday()
	return day != time.Saturday && day != time.Sunday
}

// AddWorkingDays returns the date n working days after date, stepping
// day by day and skipping weekends. The time of day is preserved.
func AddWorkingDays(date time.Time, n int) time.Time {
	result := date
	added := 0

	for added < n {
		result = result.AddDate(0, 0, 1)
		if IsWorkingDay(result) {
			added++
		}
	}

	return result
}

// WorkingDaysBetween counts the working days in [start, end], inclusive
// on both sides. Returns 0 when end is before start.
func WorkingDaysBetween(start, end time.Time) int {
	count := 0
	current := start

	for !current.After(end) {
		if IsWorkingDay(current) {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}

	return count
}
