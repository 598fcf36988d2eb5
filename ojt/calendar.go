package ojt

import (
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// =============================================================================
// PHASE RESOLUTION
// =============================================================================

// ResolvePhase returns the first phase, in list order, whose interval covers
// date. Overlaps are resolved by position: earlier phases win.
func ResolvePhase(date generic.Date, phases []Phase) (*Phase, bool) {
	for i := range phases {
		if phases[i].Covers(date) {
			return &phases[i], true
		}
	}
	return nil, false
}

// IsWorkingDay is true iff a phase covers date, the phase works that
// weekday and date is not a holiday. Holiday type does not matter.
func IsWorkingDay(date generic.Date, phases []Phase, holidays []Holiday) bool {
	return NewCalendar(phases, holidays).IsWorkingDay(date)
}

// ExpectedWorkingDays lists the working days of [start, end] in order.
func ExpectedWorkingDays(start, end generic.Date, phases []Phase, holidays []Holiday) []generic.Date {
	return NewCalendar(phases, holidays).WorkingDays(start, end)
}

// CountExpectedWorkingDays is len(ExpectedWorkingDays(...)).
func CountExpectedWorkingDays(start, end generic.Date, phases []Phase, holidays []Holiday) int {
	return len(ExpectedWorkingDays(start, end, phases, holidays))
}

// HolidayOn returns the first holiday listed for date.
func HolidayOn(date generic.Date, holidays []Holiday) (*Holiday, bool) {
	for i := range holidays {
		if holidays[i].Date.Equal(date) {
			return &holidays[i], true
		}
	}
	return nil, false
}

// =============================================================================
// CALENDAR - Schedule + holidays with an indexed holiday set
// =============================================================================

// Calendar answers working-day questions for one schedule and holiday list.
// Holidays are indexed by their YYYY-MM-DD form, the exact-match key.
// It implements generic.DailyCapacity for completion projection.
type Calendar struct {
	schedule Schedule
	holidays map[string]Holiday
}

var _ generic.DailyCapacity = (*Calendar)(nil)

func NewCalendar(phases []Phase, holidays []Holiday) *Calendar {
	set := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		if _, exists := set[h.Date.String()]; !exists {
			set[h.Date.String()] = h
		}
	}
	return &Calendar{schedule: phases, holidays: set}
}

func (c *Calendar) Phase(date generic.Date) (*Phase, bool) { return ResolvePhase(date, c.schedule) }

func (c *Calendar) Holiday(date generic.Date) (Holiday, bool) {
	h, ok := c.holidays[date.String()]
	return h, ok
}

func (c *Calendar) IsWorkingDay(date generic.Date) bool {
	_, ok := c.workingPhase(date)
	return ok
}

// workingPhase returns the governing phase when date is a working day.
func (c *Calendar) workingPhase(date generic.Date) (*Phase, bool) {
	phase, ok := c.Phase(date)
	if !ok {
		return nil, false
	}
	if !phase.WorkDays.Contains(date.ISOWeekday()) {
		return nil, false
	}
	if _, holiday := c.holidays[date.String()]; holiday {
		return nil, false
	}
	return phase, true
}

// WorkingDays lists the working days of [start, end] in order. An inverted
// range has none.
func (c *Calendar) WorkingDays(start, end generic.Date) []generic.Date {
	days := []generic.Date{}
	for _, d := range generic.NewPeriod(start, end).Days() {
		if c.IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// CapacityOn is the governing phase's net daily hours on working days.
func (c *Calendar) CapacityOn(date generic.Date) (decimal.Decimal, bool) {
	phase, ok := c.workingPhase(date)
	if !ok {
		return decimal.Zero, false
	}
	return phase.NetDailyHours, true
}
