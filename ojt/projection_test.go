package ojt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/ojt"
)

func project(t *testing.T, remaining, start string) string {
	t.Helper()
	end, ok := ojt.ProjectCompletion(hours(remaining), date(start), ojt.DefaultSchedule(), ojt.DefaultHolidays(), ojt.DefaultProjectionHorizon)
	require.True(t, ok)
	return end.String()
}

func TestProjectCompletion_NothingRemaining(t *testing.T) {
	assert.Equal(t, "2026-04-04", project(t, "0", "2026-04-04"))
	assert.Equal(t, "2026-04-04", project(t, "-3", "2026-04-04"))
}

func TestProjectCompletion_SpendsNetDailyHours(t *testing.T) {
	// Phase 1 days are worth 10h: 25h takes Mon, Tue and part of Wed.
	assert.Equal(t, "2026-02-04", project(t, "25", "2026-02-02"))
	// Phase 2 days are worth 8h.
	assert.Equal(t, "2026-04-07", project(t, "16", "2026-04-06"))
}

func TestProjectCompletion_SkipsHolidaysAndWeekends(t *testing.T) {
	// GIVEN: 16h left on Wed Apr 1
	// THEN: Apr 2-5 contribute nothing, Mon Apr 6 finishes it
	assert.Equal(t, "2026-04-06", project(t, "16", "2026-04-01"))
}

func TestProjectCompletion_HorizonExhausted(t *testing.T) {
	_, ok := ojt.ProjectCompletion(hours("1"), date("2026-04-06"), nil, nil, ojt.DefaultProjectionHorizon)
	assert.False(t, ok)

	_, ok = ojt.ProjectCompletion(hours("1"), date("2026-04-06"), ojt.DefaultSchedule(), nil, 0)
	assert.False(t, ok)

	// Ten days before the schedule starts cannot finish anything.
	_, ok = ojt.ProjectCompletion(hours("1"), date("2026-01-20"), ojt.DefaultSchedule(), nil, 10)
	assert.False(t, ok)
}

func TestProjectCompletion_MonotonicInRemaining(t *testing.T) {
	// More remaining hours never finishes earlier.
	start := date("2026-02-02")
	prev := start
	for r := int64(0); r <= 480; r += 5 {
		end, ok := ojt.ProjectCompletion(decimal.NewFromInt(r), start, ojt.DefaultSchedule(), ojt.DefaultHolidays(), ojt.DefaultProjectionHorizon)
		require.True(t, ok, "remaining %d", r)
		assert.False(t, end.Before(prev), "remaining %d finished %s before %s", r, end, prev)
		prev = end
	}
}

func TestProjectCompletion_ResultIsWorkingDay(t *testing.T) {
	schedule, holidays := ojt.DefaultSchedule(), ojt.DefaultHolidays()
	for _, r := range []string{"0.5", "8", "100", "333.33"} {
		end, ok := ojt.ProjectCompletion(hours(r), date("2026-03-28"), schedule, holidays, ojt.DefaultProjectionHorizon)
		require.True(t, ok)
		assert.True(t, ojt.IsWorkingDay(end, schedule, holidays), "remaining %s ended on %s", r, end)
	}
}

func TestCalendar_Project_ReportsWalk(t *testing.T) {
	cal := ojt.NewCalendar(ojt.DefaultSchedule(), ojt.DefaultHolidays())

	result := cal.Project(hours("16"), date("2026-04-01"), ojt.DefaultProjectionHorizon)

	assert.True(t, result.Found)
	assert.Equal(t, 2, result.CountedDays)
	assert.Equal(t, 6, result.DaysWalked)
}
