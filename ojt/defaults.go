package ojt

import (
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// =============================================================================
// SEED DATA
// =============================================================================

// DefaultSettings: 486 required hours starting 2026-02-02.
func DefaultSettings() Settings {
	return Settings{
		RequiredHours: decimal.NewFromInt(486),
		StartDate:     generic.MustParseDate("2026-02-02"),
	}
}

// DefaultSchedule is a compressed Mon-Thu phase followed by an open-ended
// Mon-Fri phase.
func DefaultSchedule() Schedule {
	return Schedule{
		{
			ID:            "phase1",
			Label:         "Phase 1",
			Start:         generic.MustParseDate("2026-02-02"),
			End:           generic.EndsOn(generic.MustParseDate("2026-03-27")),
			WorkDays:      WorkDays{generic.Monday, generic.Tuesday, generic.Wednesday, generic.Thursday},
			ShiftStart:    generic.MustParseClockTime("07:00"),
			ShiftEnd:      generic.MustParseClockTime("18:00"),
			LunchStart:    generic.MustParseClockTime("12:00"),
			LunchEnd:      generic.MustParseClockTime("13:00"),
			NetDailyHours: decimal.NewFromInt(10),
		},
		{
			ID:            "phase2",
			Label:         "Phase 2",
			Start:         generic.MustParseDate("2026-03-28"),
			End:           generic.OpenEnd(),
			WorkDays:      WorkDays{generic.Monday, generic.Tuesday, generic.Wednesday, generic.Thursday, generic.Friday},
			ShiftStart:    generic.MustParseClockTime("08:00"),
			ShiftEnd:      generic.MustParseClockTime("17:00"),
			LunchStart:    generic.MustParseClockTime("12:00"),
			LunchEnd:      generic.MustParseClockTime("13:00"),
			NetDailyHours: decimal.NewFromInt(8),
		},
	}
}

// Philippine 2026 regular holidays and special non-working days.
// Feb 25 (EDSA) is a special working day and is not listed.
var philippineHolidays2026 = []struct {
	date string
	name string
	kind HolidayType
}{
	{"2026-01-01", "New Year's Day", HolidayRegular},
	{"2026-02-17", "Chinese New Year", HolidaySpecial},
	{"2026-04-02", "Maundy Thursday", HolidayRegular},
	{"2026-04-03", "Good Friday", HolidayRegular},
	{"2026-04-04", "Black Saturday", HolidaySpecial},
	{"2026-04-09", "Araw ng Kagitingan (Day of Valor)", HolidayRegular},
	{"2026-05-01", "Labor Day", HolidayRegular},
	{"2026-06-12", "Independence Day", HolidayRegular},
	{"2026-08-21", "Ninoy Aquino Day", HolidaySpecial},
	{"2026-08-31", "National Heroes Day", HolidayRegular},
	{"2026-11-01", "All Saints' Day", HolidaySpecial},
	{"2026-11-02", "All Souls' Day", HolidaySpecial},
	{"2026-11-30", "Bonifacio Day", HolidayRegular},
	{"2026-12-08", "Feast of the Immaculate Conception of Mary", HolidaySpecial},
	{"2026-12-24", "Christmas Eve", HolidaySpecial},
	{"2026-12-25", "Christmas Day", HolidayRegular},
	{"2026-12-30", "Rizal Day", HolidayRegular},
	{"2026-12-31", "Last Day of the Year", HolidaySpecial},
}

func DefaultHolidays() []Holiday {
	out := make([]Holiday, len(philippineHolidays2026))
	for i, h := range philippineHolidays2026 {
		out[i] = Holiday{
			ID:   "ph-" + h.date,
			Name: h.name,
			Date: generic.MustParseDate(h.date),
			Type: h.kind,
		}
	}
	return out
}

// DefaultState is what a fresh repository holds.
func DefaultState() State {
	return State{
		Settings:   DefaultSettings(),
		Schedule:   DefaultSchedule(),
		Holidays:   DefaultHolidays(),
		Attendance: []Entry{},
	}
}
