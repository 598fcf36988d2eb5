/*
tracker.go - Attendance workflows over a Repository

PURPOSE:
  Tracker is the service layer between callers (HTTP API, CLI) and
  persisted state. Each operation loads what it needs, applies the pure
  engine (calendar, hours, validation) and saves the result.

SAVE FLOW:
  1. Reject dates before the OJT start date or after today
  2. Absent, or not a working day: 0 hours (non-working days keep their times)
  3. Working day: validate the time pair, then compute rendered hours
  4. Upsert by date: an existing entry for the date keeps its ID

Rendered hours are frozen at save time. Editing the schedule later does not
change historical entries.

SEE ALSO:
  - dashboard.go: progress and projection
  - repository.go: persistence contract
*/
package ojt

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// Tracker applies the hours engine to a Repository.
type Tracker struct {
	repo    Repository
	today   func() generic.Date
	newID   func() string
	horizon int
}

type TrackerOption func(*Tracker)

// WithClock overrides how "today" is determined.
func WithClock(today func() generic.Date) TrackerOption {
	return func(t *Tracker) { t.today = today }
}

// WithIDGenerator overrides entry/holiday ID generation.
func WithIDGenerator(newID func() string) TrackerOption {
	return func(t *Tracker) { t.newID = newID }
}

// WithProjectionHorizon overrides DefaultProjectionHorizon.
func WithProjectionHorizon(days int) TrackerOption {
	return func(t *Tracker) { t.horizon = days }
}

func NewTracker(repo Repository, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		repo:    repo,
		today:   generic.Today,
		newID:   uuid.NewString,
		horizon: DefaultProjectionHorizon,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Today() generic.Date { return t.today() }

// Load returns the complete persisted state.
func (t *Tracker) Load(ctx context.Context) (State, error) {
	settings, err := t.repo.LoadSettings(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load settings: %w", err)
	}
	schedule, err := t.repo.LoadSchedule(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load schedule: %w", err)
	}
	holidays, err := t.repo.LoadHolidays(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load holidays: %w", err)
	}
	attendance, err := t.repo.LoadAttendance(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load attendance: %w", err)
	}
	return State{Settings: settings, Schedule: schedule, Holidays: holidays, Attendance: attendance}, nil
}

func (t *Tracker) calendar(ctx context.Context) (*Calendar, error) {
	schedule, err := t.repo.LoadSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	holidays, err := t.repo.LoadHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	return NewCalendar(schedule, holidays), nil
}

// =============================================================================
// DAY INFO
// =============================================================================

// DayInfo describes a single date for the entry form.
type DayInfo struct {
	Date       generic.Date
	Phase      *Phase
	IsWorking  bool
	Holiday    *Holiday
	Existing   *Entry
	PrefillIn  *generic.ClockTime
	PrefillOut *generic.ClockTime
}

// DayInfo resolves the phase, working status and holiday for date, and the
// times an entry form should start with: the existing entry's times, else
// the phase's shift.
func (t *Tracker) DayInfo(ctx context.Context, date generic.Date) (DayInfo, error) {
	state, err := t.Load(ctx)
	if err != nil {
		return DayInfo{}, err
	}
	cal := NewCalendar(state.Schedule, state.Holidays)

	info := DayInfo{Date: date, IsWorking: cal.IsWorkingDay(date)}
	if phase, ok := cal.Phase(date); ok {
		p := *phase
		info.Phase = &p
	}
	if h, ok := cal.Holiday(date); ok {
		info.Holiday = &h
	}
	if e, ok := findByDate(state.Attendance, date); ok {
		info.Existing = &e
		info.PrefillIn, info.PrefillOut = e.TimeIn, e.TimeOut
	} else if info.Phase != nil {
		in, out := info.Phase.ShiftStart, info.Phase.ShiftEnd
		info.PrefillIn, info.PrefillOut = &in, &out
	}
	return info, nil
}

// PreviewHours computes what a pair would render on date without saving.
func (t *Tracker) PreviewHours(ctx context.Context, date generic.Date, timeIn, timeOut *generic.ClockTime) (HoursBreakdown, *Phase, error) {
	cal, err := t.calendar(ctx)
	if err != nil {
		return HoursBreakdown{}, nil, err
	}
	phase, _ := cal.Phase(date)
	return CalculateHours(timeIn, timeOut, phase), phase, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// EntryInput is a raw attendance submission.
type EntryInput struct {
	Date    generic.Date
	TimeIn  *generic.ClockTime
	TimeOut *generic.ClockTime
	Absent  bool
	Notes   string
}

// SaveEntry validates, computes and upserts the entry for input.Date. The
// bool reports whether a new entry was created.
func (t *Tracker) SaveEntry(ctx context.Context, input EntryInput) (Entry, bool, error) {
	state, err := t.Load(ctx)
	if err != nil {
		return Entry{}, false, err
	}

	entry, err := t.PrepareEntry(state, input)
	if err != nil {
		return Entry{}, false, err
	}

	existing, found := findByDate(state.Attendance, input.Date)
	if found {
		entry.ID = existing.ID
	} else {
		entry.ID = t.newID()
	}

	if err := t.repo.SaveEntry(ctx, entry); err != nil {
		return Entry{}, false, fmt.Errorf("save entry: %w", err)
	}
	return entry, !found, nil
}

// PrepareEntry checks input against state and computes the entry SaveEntry
// would store, without an ID and without writing anything.
func (t *Tracker) PrepareEntry(state State, input EntryInput) (Entry, error) {
	if input.Date.Before(state.Settings.StartDate) {
		return Entry{}, fmt.Errorf("%w: %s is before %s", ErrDateBeforeStart, input.Date, state.Settings.StartDate)
	}
	if today := t.today(); input.Date.After(today) {
		return Entry{}, fmt.Errorf("%w: %s is after %s", ErrFutureDate, input.Date, today)
	}

	cal := NewCalendar(state.Schedule, state.Holidays)
	hours := decimal.Zero
	if !input.Absent && cal.IsWorkingDay(input.Date) {
		phase, ok := cal.Phase(input.Date)
		if !ok {
			return Entry{}, ErrNoPhase
		}
		if result := ValidateEntry(input.TimeIn, input.TimeOut, phase); !result.Valid {
			return Entry{}, &EntryValidationError{Result: result}
		}
		hours = RenderedHours(input.TimeIn, input.TimeOut, phase)
	}

	entry := Entry{
		Date:          input.Date,
		TimeIn:        input.TimeIn,
		TimeOut:       input.TimeOut,
		RenderedHours: hours,
		Notes:         input.Notes,
	}
	if input.Absent {
		entry.TimeIn, entry.TimeOut = nil, nil
	}
	return entry, nil
}

func (t *Tracker) DeleteEntry(ctx context.Context, id string) error {
	return t.repo.DeleteEntry(ctx, id)
}

// ListEntries returns the attendance history, newest first.
func (t *Tracker) ListEntries(ctx context.Context) ([]Entry, error) {
	entries, err := t.repo.LoadAttendance(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(entries)
	return entries, nil
}

// ResetAttendance deletes every entry, keeping settings, schedule and holidays.
func (t *Tracker) ResetAttendance(ctx context.Context) error {
	return t.repo.ClearAttendance(ctx)
}

// ResetAll restores the seeded defaults.
func (t *Tracker) ResetAll(ctx context.Context) error {
	return t.repo.Reset(ctx)
}

func findByDate(entries []Entry, date generic.Date) (Entry, bool) {
	for _, e := range entries {
		if e.Date.Equal(date) {
			return e, true
		}
	}
	return Entry{}, false
}

func sortNewestFirst(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.Date.Compare(a.Date) })
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ListHolidays returns holidays ordered by date.
func (t *Tracker) ListHolidays(ctx context.Context) ([]Holiday, error) {
	hs, err := t.repo.LoadHolidays(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(hs, func(a, b Holiday) int { return a.Date.Compare(b.Date) })
	return hs, nil
}

// AddHoliday adds a holiday; the date must not already have one.
func (t *Tracker) AddHoliday(ctx context.Context, name string, date generic.Date, kind HolidayType) (Holiday, error) {
	name = strings.TrimSpace(name)
	if name == "" || date.IsZero() {
		return Holiday{}, ErrHolidayRequired
	}
	if kind == "" {
		kind = HolidayRegular
	}
	if !kind.Valid() {
		return Holiday{}, fmt.Errorf("%w: %q", ErrInvalidHolidayType, kind)
	}

	existing, err := t.repo.LoadHolidays(ctx)
	if err != nil {
		return Holiday{}, err
	}
	if _, dup := HolidayOn(date, existing); dup {
		return Holiday{}, fmt.Errorf("%w: %s", ErrDuplicateHoliday, date)
	}

	h := Holiday{ID: t.newID(), Name: name, Date: date, Type: kind}
	if err := t.repo.SaveHoliday(ctx, h); err != nil {
		return Holiday{}, fmt.Errorf("save holiday: %w", err)
	}
	return h, nil
}

func (t *Tracker) DeleteHoliday(ctx context.Context, id string) error {
	return t.repo.DeleteHoliday(ctx, id)
}

// ReplaceHolidays swaps the whole holiday list. Dates must be unique.
func (t *Tracker) ReplaceHolidays(ctx context.Context, hs []Holiday) error {
	if err := validateHolidays(hs); err != nil {
		return err
	}
	return t.repo.ReplaceHolidays(ctx, hs)
}

func validateHolidays(hs []Holiday) error {
	seen := make(map[string]bool, len(hs))
	for _, h := range hs {
		if strings.TrimSpace(h.Name) == "" || h.Date.IsZero() {
			return ErrHolidayRequired
		}
		if !h.Type.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidHolidayType, h.Type)
		}
		if seen[h.Date.String()] {
			return fmt.Errorf("%w: %s", ErrDuplicateHoliday, h.Date)
		}
		seen[h.Date.String()] = true
	}
	return nil
}

// RestoreDefaultHolidays adds every default holiday whose date is free and
// returns how many were added.
func (t *Tracker) RestoreDefaultHolidays(ctx context.Context) (int, error) {
	existing, err := t.repo.LoadHolidays(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, h := range DefaultHolidays() {
		if _, taken := HolidayOn(h.Date, existing); taken {
			continue
		}
		if err := t.repo.SaveHoliday(ctx, h); err != nil {
			return added, fmt.Errorf("save holiday: %w", err)
		}
		existing = append(existing, h)
		added++
	}
	return added, nil
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func (t *Tracker) Settings(ctx context.Context) (Settings, error) {
	return t.repo.LoadSettings(ctx)
}

func (t *Tracker) UpdateSettings(ctx context.Context, s Settings) error {
	s, err := normalizeSettings(s)
	if err != nil {
		return err
	}
	return t.repo.SaveSettings(ctx, s)
}

func normalizeSettings(s Settings) (Settings, error) {
	s.StudentName = strings.TrimSpace(s.StudentName)
	return s, s.Validate()
}

func (t *Tracker) Schedule(ctx context.Context) (Schedule, error) {
	return t.repo.LoadSchedule(ctx)
}

// UpdateSchedule replaces the schedule. Existing entries keep their hours.
func (t *Tracker) UpdateSchedule(ctx context.Context, s Schedule) error {
	if err := normalizeSchedule(s); err != nil {
		return err
	}
	return t.repo.SaveSchedule(ctx, s)
}

func normalizeSchedule(s Schedule) error {
	for i := range s {
		s[i].WorkDays = s[i].WorkDays.Normalize()
	}
	return s.Validate()
}
