// Package ojt implements the on-the-job-training hours engine: schedule phase
// resolution, working-day rules, rendered-hours calculation, entry
// validation, aggregation and completion projection, plus the Tracker
// service that applies them to persisted state.
package ojt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// =============================================================================
// SCHEDULE
// =============================================================================

// WorkDays is the set of ISO weekdays a phase works.
type WorkDays []generic.Weekday

func (w WorkDays) Contains(day generic.Weekday) bool { return slices.Contains(w, day) }

// Normalize returns a sorted copy without duplicates.
func (w WorkDays) Normalize() WorkDays {
	out := slices.Clone(w)
	slices.Sort(out)
	return slices.Compact(out)
}

// Phase is a dated interval of the schedule with its own shift rules.
type Phase struct {
	ID    string
	Label string
	Start generic.Date
	End   generic.EndDate

	WorkDays WorkDays

	// Paid window and the unpaid interval nested inside it.
	ShiftStart generic.ClockTime
	ShiftEnd   generic.ClockTime
	LunchStart generic.ClockTime
	LunchEnd   generic.ClockTime

	// Most hours a single day of this phase can contribute.
	NetDailyHours decimal.Decimal
}

func (p Phase) Period() generic.Period { return generic.Period{Start: p.Start, End: p.End} }

// Covers reports whether the phase's interval includes d.
func (p Phase) Covers(d generic.Date) bool { return p.Period().Contains(d) }

// Validate checks the phase invariants. The engine itself tolerates invalid
// phases; configuration entry points reject them.
func (p Phase) Validate() error {
	fail := func(format string, args ...any) error {
		return &PhaseError{PhaseID: p.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if strings.TrimSpace(p.ID) == "" {
		return fail("id is required")
	}
	if p.Start.IsZero() {
		return fail("start date is required")
	}
	if err := p.Period().Validate(); err != nil {
		return fail("end date %s is before start date %s", p.End, p.Start)
	}
	if len(p.WorkDays) == 0 {
		return fail("at least one work day is required")
	}
	for _, d := range p.WorkDays {
		if !d.Valid() {
			return fail("work day %d is outside 1..7", int(d))
		}
	}
	for _, c := range []generic.ClockTime{p.ShiftStart, p.ShiftEnd, p.LunchStart, p.LunchEnd} {
		if !c.Valid() {
			return fail("clock time %d is outside the day", int(c))
		}
	}
	if p.ShiftStart >= p.ShiftEnd {
		return fail("shift start %s must be before shift end %s", p.ShiftStart, p.ShiftEnd)
	}
	if p.LunchStart > p.LunchEnd {
		return fail("lunch start %s is after lunch end %s", p.LunchStart, p.LunchEnd)
	}
	if p.LunchStart < p.ShiftStart || p.LunchEnd > p.ShiftEnd {
		return fail("lunch %s-%s must fall within shift %s-%s", p.LunchStart, p.LunchEnd, p.ShiftStart, p.ShiftEnd)
	}
	if !p.NetDailyHours.IsPositive() {
		return fail("net daily hours must be positive")
	}
	return nil
}

// Schedule is an ordered list of phases. Order is significant: when phases
// overlap, the earlier one governs the shared dates.
type Schedule []Phase

// Validate checks every phase and rejects duplicate IDs.
func (s Schedule) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, p := range s {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return &PhaseError{PhaseID: p.ID, Reason: "duplicate phase id"}
		}
		seen[p.ID] = true
	}
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayType is display-only: every type suppresses working-day status.
type HolidayType string

const (
	HolidayRegular HolidayType = "regular"
	HolidaySpecial HolidayType = "special"
)

func (t HolidayType) Valid() bool { return t == HolidayRegular || t == HolidaySpecial }

// ParseHolidayType maps "" to regular.
func ParseHolidayType(s string) (HolidayType, error) {
	if s == "" {
		return HolidayRegular, nil
	}
	t := HolidayType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidHolidayType, s)
	}
	return t, nil
}

type Holiday struct {
	ID   string
	Name string
	Date generic.Date
	Type HolidayType
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// Entry is one logged day. RenderedHours is fixed at save time; later
// schedule edits do not change it.
type Entry struct {
	ID      string
	Date    generic.Date
	TimeIn  *generic.ClockTime
	TimeOut *generic.ClockTime

	RenderedHours decimal.Decimal
	Notes         string
}

// IsAbsence reports an entry logged without times.
func (e Entry) IsAbsence() bool { return e.TimeIn == nil && e.TimeOut == nil }

// =============================================================================
// SETTINGS & STATE
// =============================================================================

type Settings struct {
	RequiredHours decimal.Decimal
	StudentName   string
	StartDate     generic.Date
}

// MaxRequiredHours bounds the configurable target.
var MaxRequiredHours = decimal.NewFromInt(10000)

func (s Settings) Validate() error {
	if s.RequiredHours.LessThan(decimal.NewFromInt(1)) || s.RequiredHours.GreaterThan(MaxRequiredHours) {
		return fmt.Errorf("%w: required hours must be between 1 and %s", ErrInvalidSettings, MaxRequiredHours)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidSettings)
	}
	return nil
}

// State is everything the tracker persists.
type State struct {
	Settings   Settings
	Schedule   Schedule
	Holidays   []Holiday
	Attendance []Entry
}
