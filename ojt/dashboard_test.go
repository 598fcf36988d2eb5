package ojt_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/ojt"
)

func TestBuildDashboard_Empty(t *testing.T) {
	// GIVEN: no attendance, today is Mon Apr 6
	// THEN: 486h remain and the projection starts today
	d := ojt.BuildDashboard(ojt.DefaultState(), date("2026-04-06"), ojt.DefaultProjectionHorizon)

	assert.True(t, d.TotalRendered.IsZero())
	assertHours(t, "486", d.RemainingHours)
	assert.True(t, d.PercentComplete.IsZero())
	assert.False(t, d.Complete)
	require.NotNil(t, d.ProjectedEndDate)
	require.NotNil(t, d.DaysRemaining)
	assert.Equal(t, ojt.CountExpectedWorkingDays(date("2026-04-06"), *d.ProjectedEndDate, ojt.DefaultSchedule(), ojt.DefaultHolidays()), *d.DaysRemaining)
	assert.True(t, d.TodayWorking)
	require.NotNil(t, d.TodayPhase)
	assert.Equal(t, "phase2", d.TodayPhase.ID)
	assert.Nil(t, d.TodayHoliday)
}

func TestBuildDashboard_ProgressAndRecent(t *testing.T) {
	state := ojt.DefaultState()
	for i := 0; i < 7; i++ {
		state.Attendance = append(state.Attendance, ojt.Entry{
			ID:            fmt.Sprintf("e%d", i),
			Date:          date("2026-03-30").AddDays(i),
			RenderedHours: decimal.NewFromFloat(48.6),
		})
	}

	d := ojt.BuildDashboard(state, date("2026-04-05"), ojt.DefaultProjectionHorizon)

	assertHours(t, "340.2", d.TotalRendered)
	assertHours(t, "145.8", d.RemainingHours)
	assertHours(t, "70", d.PercentComplete)
	assert.Equal(t, 7, d.TotalDays)
	require.Len(t, d.Recent, ojt.RecentEntriesLimit)
	assert.Equal(t, "e6", d.Recent[0].ID)
	assert.Equal(t, "e2", d.Recent[4].ID)
	require.NotNil(t, d.TodayEntry)
	assert.Equal(t, "e6", d.TodayEntry.ID)
}

func TestBuildDashboard_Complete(t *testing.T) {
	state := ojt.DefaultState()
	state.Attendance = []ojt.Entry{{ID: "all", Date: date("2026-03-02"), RenderedHours: decimal.NewFromInt(500)}}

	d := ojt.BuildDashboard(state, date("2026-04-09"), ojt.DefaultProjectionHorizon)

	assert.True(t, d.RemainingHours.IsZero())
	assertHours(t, "100", d.PercentComplete)
	assert.True(t, d.Complete)
	require.NotNil(t, d.ProjectedEndDate)
	assert.Equal(t, "2026-04-09", d.ProjectedEndDate.String())
	// Apr 9 is a holiday, so no working days remain.
	assert.Equal(t, 0, *d.DaysRemaining)
	require.NotNil(t, d.TodayHoliday)
	assert.False(t, d.TodayWorking)
}

func TestBuildDashboard_NoProjectionWithoutSchedule(t *testing.T) {
	state := ojt.DefaultState()
	state.Schedule = nil

	d := ojt.BuildDashboard(state, date("2026-04-06"), ojt.DefaultProjectionHorizon)

	assert.Nil(t, d.ProjectedEndDate)
	assert.Nil(t, d.DaysRemaining)
	assert.Nil(t, d.TodayPhase)
}

func TestTracker_Dashboard(t *testing.T) {
	tr, _ := newTestTracker(t)
	logDay(t, tr, "2026-04-14", "08:00", "17:00")
	logDay(t, tr, "2026-04-15", "08:00", "12:00")

	d, err := tr.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-04-15", d.Today.String())
	assertHours(t, "12", d.TotalRendered)
	assertHours(t, "474", d.RemainingHours)
	assert.Equal(t, 2, d.TotalDays)
	require.NotNil(t, d.TodayEntry)
}

func TestTracker_WorkingDaysAndProject(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	days, err := tr.WorkingDays(ctx, date("2026-03-30"), date("2026-04-03"))
	require.NoError(t, err)
	assert.Len(t, days, 3)

	result, err := tr.Project(ctx, hours("16"), date("2026-04-01"))
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "2026-04-06", result.Date.String())
}

func TestTracker_WorkingDays_RangeCap(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	from := date("2026-01-01")

	// Exactly MaxRangeDays days is allowed.
	_, err := tr.WorkingDays(ctx, from, from.AddDays(ojt.MaxRangeDays-1))
	require.NoError(t, err)

	_, err = tr.WorkingDays(ctx, from, from.AddDays(ojt.MaxRangeDays))
	assert.ErrorIs(t, err, ojt.ErrRangeTooLarge)
	assert.True(t, ojt.IsClientError(err))

	// Far beyond what a duration can hold still fails fast.
	_, err = tr.WorkingDays(ctx, date("0001-01-01"), date("9999-12-31"))
	assert.ErrorIs(t, err, ojt.ErrRangeTooLarge)
}
