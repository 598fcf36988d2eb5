package ojt

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// RecentEntriesLimit is how many entries the dashboard lists.
const RecentEntriesLimit = 5

var hundred = decimal.NewFromInt(100)

// Dashboard is the progress view.
type Dashboard struct {
	Settings Settings
	Today    generic.Date

	TotalRendered   decimal.Decimal
	RemainingHours  decimal.Decimal
	PercentComplete decimal.Decimal
	Complete        bool
	TotalDays       int

	// Set only when the projection finished within the horizon.
	ProjectedEndDate *generic.Date
	// Working days in [today, projected end], including the end date.
	DaysRemaining *int

	TodayPhase   *Phase
	TodayWorking bool
	TodayHoliday *Holiday
	TodayEntry   *Entry

	Recent []Entry
}

// BuildDashboard computes progress toward settings.RequiredHours as of today.
func BuildDashboard(state State, today generic.Date, horizon int) Dashboard {
	summary := Summarize(state.Attendance)
	required := state.Settings.RequiredHours

	d := Dashboard{
		Settings:       state.Settings,
		Today:          today,
		TotalRendered:  summary.TotalRendered,
		TotalDays:      summary.TotalDays,
		RemainingHours: generic.RoundHours(generic.MaxZero(required.Sub(summary.TotalRendered))),
	}

	d.PercentComplete = decimal.Zero
	if required.IsPositive() {
		d.PercentComplete = decimal.Min(summary.TotalRendered.Div(required).Mul(hundred), hundred)
	}
	d.Complete = d.PercentComplete.GreaterThanOrEqual(hundred)

	cal := NewCalendar(state.Schedule, state.Holidays)
	if end, ok := cal.ProjectCompletion(d.RemainingHours, today, horizon); ok {
		days := len(cal.WorkingDays(today, end))
		d.ProjectedEndDate = &end
		d.DaysRemaining = &days
	}

	if phase, ok := cal.Phase(today); ok {
		p := *phase
		d.TodayPhase = &p
	}
	d.TodayWorking = cal.IsWorkingDay(today)
	if h, ok := cal.Holiday(today); ok {
		d.TodayHoliday = &h
	}
	if e, ok := findByDate(state.Attendance, today); ok {
		d.TodayEntry = &e
	}

	recent := append([]Entry(nil), state.Attendance...)
	sortNewestFirst(recent)
	if len(recent) > RecentEntriesLimit {
		recent = recent[:RecentEntriesLimit]
	}
	d.Recent = recent
	return d
}

// Dashboard loads state and builds the progress view for today.
func (t *Tracker) Dashboard(ctx context.Context) (Dashboard, error) {
	state, err := t.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(state, t.today(), t.horizon), nil
}

// Project runs the completion projection for arbitrary remaining hours.
func (t *Tracker) Project(ctx context.Context, remaining decimal.Decimal, from generic.Date) (generic.ProjectionResult, error) {
	cal, err := t.calendar(ctx)
	if err != nil {
		return generic.ProjectionResult{}, err
	}
	return cal.Project(remaining, from, t.horizon), nil
}

// MaxRangeDays bounds the ranges WorkingDays enumerates, about ten years.
const MaxRangeDays = 3660

// WorkingDays lists the expected working days of [from, to]. Ranges longer
// than MaxRangeDays return ErrRangeTooLarge.
func (t *Tracker) WorkingDays(ctx context.Context, from, to generic.Date) ([]generic.Date, error) {
	if n := generic.DaysBetween(from, to) + 1; n > MaxRangeDays {
		return nil, fmt.Errorf("%w: %d days from %s to %s (max %d)", ErrRangeTooLarge, n, from, to, MaxRangeDays)
	}
	cal, err := t.calendar(ctx)
	if err != nil {
		return nil, err
	}
	return cal.WorkingDays(from, to), nil
}
