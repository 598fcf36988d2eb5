/*
Package factory provides JSON to Go conversion for tracker configuration.

PURPOSE:
  Converts JSON schedule, holiday, settings and attendance documents into
  ojt types, and back. Configuration entering through the API, the CLI or a
  seed file passes through here, so this is where phase invariants are
  enforced before anything reaches a Repository.

JSON SCHEMA (seed file):
  {
    "settings": {"required_hours": 486, "student_name": "", "start_date": "2026-02-02"},
    "schedule": [
      {
        "id": "phase2",
        "label": "Phase 2",
        "start_date": "2026-03-28",
        "end_date": null,
        "work_days": [1, 2, 3, 4, 5],
        "shift_start": "08:00",
        "shift_end": "17:00",
        "lunch_start": "12:00",
        "lunch_end": "13:00",
        "net_daily_hours": 8
      }
    ],
    "holidays": [{"name": "Labor Day", "date": "2026-05-01", "type": "regular"}],
    "attendance": [{"date": "2026-04-06", "time_in": "08:00", "time_out": "17:00"}]
  }

  A null or missing end_date is an open-ended phase. Sections left out of a
  seed file are nil after parsing; callers keep what they already have.

KEY FEATURES:
  - Validates JSON structure and date/clock formats
  - Enforces phase invariants (wrapped in ojt.ErrInvalidSchedule)
  - Normalizes work days (sorted, no duplicates)
  - Fills holiday IDs and types when omitted

SEE ALSO:
  - ojt/types.go: domain types and invariants
  - api/dto.go: request bodies built on these types
*/
package factory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PhaseJSON is the JSON representation of a schedule phase.
type PhaseJSON struct {
	ID            string  `json:"id" validate:"required"`
	Label         string  `json:"label"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       *string `json:"end_date"` // null = open-ended
	WorkDays      []int   `json:"work_days" validate:"required,min=1,dive,min=1,max=7"`
	ShiftStart    string  `json:"shift_start" validate:"required"`
	ShiftEnd      string  `json:"shift_end" validate:"required"`
	LunchStart    string  `json:"lunch_start" validate:"required"`
	LunchEnd      string  `json:"lunch_end" validate:"required"`
	NetDailyHours float64 `json:"net_daily_hours" validate:"gt=0"`
}

// HolidayJSON is the JSON representation of a holiday.
type HolidayJSON struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required"`
	Type string `json:"type,omitempty" validate:"omitempty,oneof=regular special"`
}

// SettingsJSON is the JSON representation of tracker settings.
type SettingsJSON struct {
	RequiredHours float64 `json:"required_hours" validate:"gte=1,lte=10000"`
	StudentName   string  `json:"student_name"`
	StartDate     string  `json:"start_date" validate:"required"`
}

// EntryJSON is the JSON representation of an attendance entry. ID and
// RenderedHours are output only; hours are always recomputed on save.
type EntryJSON struct {
	ID            string  `json:"id,omitempty"`
	Date          string  `json:"date"`
	TimeIn        string  `json:"time_in,omitempty"`
	TimeOut       string  `json:"time_out,omitempty"`
	Absent        bool    `json:"absent,omitempty"`
	RenderedHours float64 `json:"rendered_hours"`
	Notes         string  `json:"notes,omitempty"`
}

// SeedJSON is a complete or partial tracker state document.
type SeedJSON struct {
	Settings   *SettingsJSON `json:"settings,omitempty"`
	Schedule   []PhaseJSON   `json:"schedule,omitempty"`
	Holidays   []HolidayJSON `json:"holidays,omitempty"`
	Attendance []EntryJSON   `json:"attendance,omitempty"`
}

// Seed is a parsed SeedJSON. Nil fields were absent from the document.
type Seed struct {
	Settings   *ojt.Settings
	Schedule   ojt.Schedule
	Holidays   []ojt.Holiday
	Attendance []ojt.EntryInput
}

// =============================================================================
// FACTORY
// =============================================================================

// ScheduleFactory converts between JSON documents and ojt types.
type ScheduleFactory struct {
	// newHolidayID names holidays read without an ID.
	newHolidayID func(h ojt.Holiday) string
}

func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{
		newHolidayID: func(h ojt.Holiday) string { return "custom-" + h.Date.String() },
	}
}

// ParseSchedule parses and validates a JSON array of phases.
func (f *ScheduleFactory) ParseSchedule(jsonStr string) (ojt.Schedule, error) {
	var phases []PhaseJSON
	if err := json.Unmarshal([]byte(jsonStr), &phases); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ojt.ErrInvalidSchedule, err)
	}
	return f.ScheduleFromJSON(phases)
}

// ScheduleFromJSON converts phases in order and validates the result.
func (f *ScheduleFactory) ScheduleFromJSON(phases []PhaseJSON) (ojt.Schedule, error) {
	schedule := make(ojt.Schedule, 0, len(phases))
	for _, pj := range phases {
		p, err := f.PhaseFromJSON(pj)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, p)
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// PhaseFromJSON converts one phase. Format errors come back as *ojt.PhaseError;
// invariants are checked by ScheduleFromJSON.
func (f *ScheduleFactory) PhaseFromJSON(pj PhaseJSON) (ojt.Phase, error) {
	fail := func(err error) (ojt.Phase, error) {
		return ojt.Phase{}, &ojt.PhaseError{PhaseID: pj.ID, Reason: err.Error()}
	}

	start, err := generic.ParseDate(pj.StartDate)
	if err != nil {
		return fail(err)
	}
	end := generic.OpenEnd()
	if pj.EndDate != nil && *pj.EndDate != "" {
		d, err := generic.ParseDate(*pj.EndDate)
		if err != nil {
			return fail(err)
		}
		end = generic.EndsOn(d)
	}

	clocks := make([]generic.ClockTime, 4)
	for i, s := range []string{pj.ShiftStart, pj.ShiftEnd, pj.LunchStart, pj.LunchEnd} {
		if clocks[i], err = generic.ParseClockTime(s); err != nil {
			return fail(err)
		}
	}

	days := make(ojt.WorkDays, len(pj.WorkDays))
	for i, d := range pj.WorkDays {
		days[i] = generic.Weekday(d)
	}

	return ojt.Phase{
		ID:            pj.ID,
		Label:         pj.Label,
		Start:         start,
		End:           end,
		WorkDays:      days.Normalize(),
		ShiftStart:    clocks[0],
		ShiftEnd:      clocks[1],
		LunchStart:    clocks[2],
		LunchEnd:      clocks[3],
		NetDailyHours: generic.RoundHours(decimal.NewFromFloat(pj.NetDailyHours)),
	}, nil
}

// PhaseToJSON converts a phase to its JSON form.
func (f *ScheduleFactory) PhaseToJSON(p ojt.Phase) PhaseJSON {
	pj := PhaseJSON{
		ID:            p.ID,
		Label:         p.Label,
		StartDate:     p.Start.String(),
		WorkDays:      make([]int, len(p.WorkDays)),
		ShiftStart:    p.ShiftStart.String(),
		ShiftEnd:      p.ShiftEnd.String(),
		LunchStart:    p.LunchStart.String(),
		LunchEnd:      p.LunchEnd.String(),
		NetDailyHours: generic.HoursFloat(p.NetDailyHours),
	}
	if d, ok := p.End.Date(); ok {
		s := d.String()
		pj.EndDate = &s
	}
	for i, d := range p.WorkDays {
		pj.WorkDays[i] = int(d)
	}
	return pj
}

func (f *ScheduleFactory) ScheduleToJSON(s ojt.Schedule) []PhaseJSON {
	out := make([]PhaseJSON, len(s))
	for i, p := range s {
		out[i] = f.PhaseToJSON(p)
	}
	return out
}

// =============================================================================
// HOLIDAYS, SETTINGS, ENTRIES
// =============================================================================

func (f *ScheduleFactory) HolidayFromJSON(hj HolidayJSON) (ojt.Holiday, error) {
	if hj.Name == "" || hj.Date == "" {
		return ojt.Holiday{}, ojt.ErrHolidayRequired
	}
	d, err := generic.ParseDate(hj.Date)
	if err != nil {
		return ojt.Holiday{}, err
	}
	kind, err := ojt.ParseHolidayType(hj.Type)
	if err != nil {
		return ojt.Holiday{}, err
	}
	h := ojt.Holiday{ID: hj.ID, Name: hj.Name, Date: d, Type: kind}
	if h.ID == "" {
		h.ID = f.newHolidayID(h)
	}
	return h, nil
}

func (f *ScheduleFactory) HolidayToJSON(h ojt.Holiday) HolidayJSON {
	return HolidayJSON{ID: h.ID, Name: h.Name, Date: h.Date.String(), Type: string(h.Type)}
}

func (f *ScheduleFactory) HolidaysToJSON(hs []ojt.Holiday) []HolidayJSON {
	out := make([]HolidayJSON, len(hs))
	for i, h := range hs {
		out[i] = f.HolidayToJSON(h)
	}
	return out
}

// SettingsFromJSON converts and validates settings.
func (f *ScheduleFactory) SettingsFromJSON(sj SettingsJSON) (ojt.Settings, error) {
	start, err := generic.ParseDate(sj.StartDate)
	if err != nil {
		return ojt.Settings{}, fmt.Errorf("%w: %v", ojt.ErrInvalidSettings, err)
	}
	s := ojt.Settings{
		RequiredHours: generic.RoundHours(decimal.NewFromFloat(sj.RequiredHours)),
		StudentName:   sj.StudentName,
		StartDate:     start,
	}
	if err := s.Validate(); err != nil {
		return ojt.Settings{}, err
	}
	return s, nil
}

func (f *ScheduleFactory) SettingsToJSON(s ojt.Settings) SettingsJSON {
	return SettingsJSON{
		RequiredHours: generic.HoursFloat(s.RequiredHours),
		StudentName:   s.StudentName,
		StartDate:     s.StartDate.String(),
	}
}

// EntryInputFromJSON parses a raw submission. Empty times mean absent.
func (f *ScheduleFactory) EntryInputFromJSON(ej EntryJSON) (ojt.EntryInput, error) {
	d, err := generic.ParseDate(ej.Date)
	if err != nil {
		return ojt.EntryInput{}, err
	}
	in, err := generic.ParseOptionalClockTime(ej.TimeIn)
	if err != nil {
		return ojt.EntryInput{}, err
	}
	out, err := generic.ParseOptionalClockTime(ej.TimeOut)
	if err != nil {
		return ojt.EntryInput{}, err
	}
	return ojt.EntryInput{Date: d, TimeIn: in, TimeOut: out, Absent: ej.Absent, Notes: ej.Notes}, nil
}

func (f *ScheduleFactory) EntryToJSON(e ojt.Entry) EntryJSON {
	return EntryJSON{
		ID:            e.ID,
		Date:          e.Date.String(),
		TimeIn:        generic.FormatOptionalClockTime(e.TimeIn),
		TimeOut:       generic.FormatOptionalClockTime(e.TimeOut),
		Absent:        e.IsAbsence(),
		RenderedHours: generic.HoursFloat(e.RenderedHours),
		Notes:         e.Notes,
	}
}

func (f *ScheduleFactory) EntriesToJSON(es []ojt.Entry) []EntryJSON {
	out := make([]EntryJSON, len(es))
	for i, e := range es {
		out[i] = f.EntryToJSON(e)
	}
	return out
}

// =============================================================================
// SEED FILES
// =============================================================================

// ParseSeed reads a seed document. Each present section is fully converted
// and validated; the first failure is returned.
func (f *ScheduleFactory) ParseSeed(r io.Reader) (Seed, error) {
	var sj SeedJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sj); err != nil {
		return Seed{}, fmt.Errorf("invalid seed JSON: %w", err)
	}

	var seed Seed
	if sj.Settings != nil {
		s, err := f.SettingsFromJSON(*sj.Settings)
		if err != nil {
			return Seed{}, fmt.Errorf("settings: %w", err)
		}
		seed.Settings = &s
	}
	if sj.Schedule != nil {
		s, err := f.ScheduleFromJSON(sj.Schedule)
		if err != nil {
			return Seed{}, fmt.Errorf("schedule: %w", err)
		}
		seed.Schedule = s
	}
	if sj.Holidays != nil {
		seed.Holidays = make([]ojt.Holiday, 0, len(sj.Holidays))
		for i, hj := range sj.Holidays {
			h, err := f.HolidayFromJSON(hj)
			if err != nil {
				return Seed{}, fmt.Errorf("holiday %d: %w", i, err)
			}
			seed.Holidays = append(seed.Holidays, h)
		}
	}
	if sj.Attendance != nil {
		seed.Attendance = make([]ojt.EntryInput, 0, len(sj.Attendance))
		for i, ej := range sj.Attendance {
			in, err := f.EntryInputFromJSON(ej)
			if err != nil {
				return Seed{}, fmt.Errorf("attendance %d: %w", i, err)
			}
			seed.Attendance = append(seed.Attendance, in)
		}
	}
	return seed, nil
}

// StateToJSON exports a full state as a seed document.
func (f *ScheduleFactory) StateToJSON(state ojt.State) SeedJSON {
	settings := f.SettingsToJSON(state.Settings)
	return SeedJSON{
		Settings:   &settings,
		Schedule:   f.ScheduleToJSON(state.Schedule),
		Holidays:   f.HolidaysToJSON(state.Holidays),
		Attendance: f.EntriesToJSON(state.Attendance),
	}
}
