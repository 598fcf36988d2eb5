package factory_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/factory"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
)

const twoPhases = `[
	{"id": "p1", "label": "Compressed", "start_date": "2026-02-02", "end_date": "2026-03-27",
	 "work_days": [4, 1, 2, 3, 1], "shift_start": "07:00", "shift_end": "18:00",
	 "lunch_start": "12:00", "lunch_end": "13:00", "net_daily_hours": 10},
	{"id": "p2", "start_date": "2026-03-28", "end_date": null,
	 "work_days": [1, 2, 3, 4, 5], "shift_start": "08:00", "shift_end": "17:00",
	 "lunch_start": "12:00", "lunch_end": "13:00", "net_daily_hours": 8}
]`

func TestParseSchedule(t *testing.T) {
	f := factory.NewScheduleFactory()

	schedule, err := f.ParseSchedule(twoPhases)

	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, ojt.WorkDays{generic.Monday, generic.Tuesday, generic.Wednesday, generic.Thursday}, schedule[0].WorkDays)
	end, bounded := schedule[0].End.Date()
	assert.True(t, bounded)
	assert.Equal(t, "2026-03-27", end.String())
	assert.True(t, schedule[1].End.IsOpen())
	assert.Equal(t, "12:00", schedule[1].LunchStart.String())
	assert.Equal(t, "8", schedule[1].NetDailyHours.String())
}

func TestParseSchedule_Rejections(t *testing.T) {
	f := factory.NewScheduleFactory()

	tests := []struct {
		name  string
		phase string
	}{
		{"bad date", `{"id":"x","start_date":"2026/02/02","work_days":[1],"shift_start":"08:00","shift_end":"17:00","lunch_start":"12:00","lunch_end":"13:00","net_daily_hours":8}`},
		{"bad clock", `{"id":"x","start_date":"2026-02-02","work_days":[1],"shift_start":"8am","shift_end":"17:00","lunch_start":"12:00","lunch_end":"13:00","net_daily_hours":8}`},
		{"lunch outside shift", `{"id":"x","start_date":"2026-02-02","work_days":[1],"shift_start":"08:00","shift_end":"17:00","lunch_start":"17:00","lunch_end":"18:00","net_daily_hours":8}`},
		{"end before start", `{"id":"x","start_date":"2026-02-02","end_date":"2026-01-02","work_days":[1],"shift_start":"08:00","shift_end":"17:00","lunch_start":"12:00","lunch_end":"13:00","net_daily_hours":8}`},
		{"weekday out of range", `{"id":"x","start_date":"2026-02-02","work_days":[8],"shift_start":"08:00","shift_end":"17:00","lunch_start":"12:00","lunch_end":"13:00","net_daily_hours":8}`},
		{"no cap", `{"id":"x","start_date":"2026-02-02","work_days":[1],"shift_start":"08:00","shift_end":"17:00","lunch_start":"12:00","lunch_end":"13:00","net_daily_hours":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParseSchedule("[" + tt.phase + "]")
			assert.ErrorIs(t, err, ojt.ErrInvalidSchedule)
			assert.True(t, ojt.IsClientError(err))
		})
	}

	_, err := f.ParseSchedule("{not json")
	assert.ErrorIs(t, err, ojt.ErrInvalidSchedule)
}

func TestScheduleJSON_RoundTrip(t *testing.T) {
	f := factory.NewScheduleFactory()

	data, err := json.Marshal(f.ScheduleToJSON(ojt.DefaultSchedule()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"end_date":null`)

	back, err := f.ParseSchedule(string(data))
	require.NoError(t, err)
	for i, want := range ojt.DefaultSchedule() {
		assert.Equal(t, want.Period().String(), back[i].Period().String())
		assert.True(t, want.NetDailyHours.Equal(back[i].NetDailyHours))
		assert.Equal(t, want.WorkDays, back[i].WorkDays)
	}
}

func TestHolidayFromJSON(t *testing.T) {
	f := factory.NewScheduleFactory()

	h, err := f.HolidayFromJSON(factory.HolidayJSON{Name: "Founding Day", Date: "2026-06-24"})
	require.NoError(t, err)
	assert.Equal(t, ojt.HolidayRegular, h.Type)
	assert.Equal(t, "custom-2026-06-24", h.ID)

	_, err = f.HolidayFromJSON(factory.HolidayJSON{Name: "x", Date: "2026-06-24", Type: "floating"})
	assert.ErrorIs(t, err, ojt.ErrInvalidHolidayType)

	_, err = f.HolidayFromJSON(factory.HolidayJSON{Date: "2026-06-24"})
	assert.ErrorIs(t, err, ojt.ErrHolidayRequired)
}

func TestSettingsFromJSON(t *testing.T) {
	f := factory.NewScheduleFactory()

	s, err := f.SettingsFromJSON(factory.SettingsJSON{RequiredHours: 600, StudentName: "Ana", StartDate: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "600", s.RequiredHours.String())

	_, err = f.SettingsFromJSON(factory.SettingsJSON{RequiredHours: 0.5, StartDate: "2026-03-02"})
	assert.ErrorIs(t, err, ojt.ErrInvalidSettings)

	_, err = f.SettingsFromJSON(factory.SettingsJSON{RequiredHours: 100, StartDate: "March 2"})
	assert.ErrorIs(t, err, ojt.ErrInvalidSettings)
}

func TestEntryJSON(t *testing.T) {
	f := factory.NewScheduleFactory()

	in, err := f.EntryInputFromJSON(factory.EntryJSON{Date: "2026-04-06", TimeIn: "08:00", Notes: "half"})
	require.NoError(t, err)
	require.NotNil(t, in.TimeIn)
	assert.Nil(t, in.TimeOut)

	_, err = f.EntryInputFromJSON(factory.EntryJSON{Date: "2026-04-06", TimeIn: "25:00"})
	assert.ErrorIs(t, err, generic.ErrInvalidClockTime)

	out := f.EntryToJSON(ojt.Entry{ID: "e1", Date: generic.MustParseDate("2026-04-07"), RenderedHours: generic.NewHours(0)})
	assert.True(t, out.Absent)
	assert.Empty(t, out.TimeIn)
}

func TestParseSeed_PartialDocument(t *testing.T) {
	// GIVEN: a seed with settings and holidays only
	// THEN: schedule and attendance stay nil so callers keep theirs
	f := factory.NewScheduleFactory()
	doc := `{
		"settings": {"required_hours": 300, "start_date": "2026-06-01"},
		"holidays": [{"name": "Founding Day", "date": "2026-06-24", "type": "special"}]
	}`

	seed, err := f.ParseSeed(strings.NewReader(doc))

	require.NoError(t, err)
	require.NotNil(t, seed.Settings)
	assert.Equal(t, "300", seed.Settings.RequiredHours.String())
	assert.Nil(t, seed.Schedule)
	assert.Nil(t, seed.Attendance)
	require.Len(t, seed.Holidays, 1)
	assert.Equal(t, ojt.HolidaySpecial, seed.Holidays[0].Type)
}

func TestParseSeed_Rejections(t *testing.T) {
	f := factory.NewScheduleFactory()

	_, err := f.ParseSeed(strings.NewReader(`{"unknown": 1}`))
	assert.Error(t, err)

	_, err = f.ParseSeed(strings.NewReader(`{"schedule": ` + strings.Replace(twoPhases, `"net_daily_hours": 8`, `"net_daily_hours": -1`, 1) + `}`))
	assert.ErrorIs(t, err, ojt.ErrInvalidSchedule)
}

func TestParseSeed_PhaseWithoutID(t *testing.T) {
	// GIVEN: a seed schedule whose phases omit "id"
	// THEN: it is rejected as an invalid schedule, not left for the store
	f := factory.NewScheduleFactory()
	phase := `{"start_date": "2026-06-01", "work_days": [1, 2, 3, 4, 5], "shift_start": "08:00", "shift_end": "17:00",
		"lunch_start": "12:00", "lunch_end": "13:00", "net_daily_hours": 8}`

	_, err := f.ParseSeed(strings.NewReader(`{"schedule": [` + phase + `, ` + phase + `]}`))

	assert.ErrorIs(t, err, ojt.ErrInvalidSchedule)
	var phaseErr *ojt.PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Contains(t, phaseErr.Reason, "id is required")
}

func TestStateToJSON_RoundTripsThroughParseSeed(t *testing.T) {
	f := factory.NewScheduleFactory()
	state := ojt.DefaultState()

	data, err := json.Marshal(f.StateToJSON(state))
	require.NoError(t, err)

	seed, err := f.ParseSeed(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.True(t, seed.Settings.RequiredHours.Equal(state.Settings.RequiredHours))
	assert.Len(t, seed.Schedule, len(state.Schedule))
	assert.Len(t, seed.Holidays, len(state.Holidays))
	assert.Equal(t, state.Holidays[0].ID, seed.Holidays[0].ID)
}
