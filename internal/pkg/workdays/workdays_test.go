package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsWorkingDay(t *testing.T) {
	// 2024-01-05 is a Friday
	assert.True(t, IsWorkingDay(date(2024, time.January, 5)))
	assert.False(t, IsWorkingDay(date(2024, time.January, 6)))  // Saturday
	assert.False(t, IsWorkingDay(date(2024, time.January, 7)))  // Sunday
	assert.True(t, IsWorkingDay(date(2024, time.January, 8)))   // Monday
}

func TestAddWorkingDaysSkipsWeekend(t *testing.T) {
	friday := date(2024, time.January, 5)

	// Friday + 3 working days = Wednesday (skips Sat, Sun)
	result := AddWorkingDays(friday, 3)
	assert.Equal(t, date(2024, time.January, 10), result)
	assert.Equal(t, time.Wednesday, result.Weekday())
}

func TestAddWorkingDaysFifteenDays(t *testing.T) {
	monday := date(2024, time.January, 8)

	// 15 working days = 3 full weeks
	result := AddWorkingDays(monday, 15)
	assert.Equal(t, date(2024, time.January, 29), result)
	assert.Equal(t, time.Monday, result.Weekday())
}

func TestAddWorkingDaysZero(t *testing.T) {
	saturday := date(2024, time.January, 6)
	assert.Equal(t, saturday, AddWorkingDays(saturday, 0))
}

func TestAddWorkingDaysNeverLandsOnWeekend(t *testing.T) {
	start := date(2024, time.March, 1)
	for n := 1; n <= 30; n++ {
		result := AddWorkingDays(start, n)
		assert.True(t, IsWorkingDay(result), "n=%d landed on %s", n, result.Weekday())
	}
}

func TestWorkingDaysBetween(t *testing.T) {
	monday := date(2024, time.January, 8)
	friday := date(2024, time.January, 12)
	nextMonday := date(2024, time.January, 15)

	assert.Equal(t, 5, WorkingDaysBetween(monday, friday))
	assert.Equal(t, 6, WorkingDaysBetween(monday, nextMonday))
	assert.Equal(t, 1, WorkingDaysBetween(monday, monday))
}

func TestWorkingDaysBetweenReversedRange(t *testing.T) {
	assert.Equal(t, 0, WorkingDaysBetween(date(2024, time.January, 12), date(2024, time.January, 8)))
}

func TestWorkingDaysBetweenWeekendOnly(t *testing.T) {
	assert.Equal(t, 0, WorkingDaysBetween(date(2024, time.January, 6), date(2024, time.January, 7)))
}
