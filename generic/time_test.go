package generic_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/generic"
)

func TestParseDate_RoundTripsCanonicalForm(t *testing.T) {
	d, err := generic.ParseDate("2026-02-23")
	require.NoError(t, err)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 23, d.Day())
	assert.Equal(t, "2026-02-23", d.String())
	assert.Equal(t, "Monday, February 23, 2026", d.FormatLong())
	assert.Equal(t, "Feb 23, 2026", d.FormatShort())
}

func TestParseDate_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2026-2-3", "23/02/2026", "2026-02-30"} {
		_, err := generic.ParseDate(s)
		assert.ErrorIs(t, err, generic.ErrInvalidDate, s)
	}
}

func TestDate_ISOWeekday(t *testing.T) {
	tests := []struct {
		date string
		want generic.Weekday
	}{
		{"2026-02-02", generic.Monday},
		{"2026-02-05", generic.Thursday},
		{"2026-02-07", generic.Saturday},
		{"2026-02-08", generic.Sunday},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, generic.MustParseDate(tt.date).ISOWeekday(), tt.date)
	}
	assert.Equal(t, "Sun", generic.Sunday.Short())
	assert.Equal(t, 7, int(generic.Sunday))
}

func TestDate_ArithmeticCrossesMonthAndYear(t *testing.T) {
	d := generic.MustParseDate("2026-12-31")
	assert.Equal(t, "2027-01-01", d.AddDays(1).String())
	assert.Equal(t, "2026-11-30", generic.MustParseDate("2026-12-01").AddDays(-1).String())
	assert.Equal(t, 365, generic.DaysBetween(generic.MustParseDate("2026-01-01"), generic.MustParseDate("2027-01-01")))
}

func TestDate_ComparisonMatchesLexicographicOrder(t *testing.T) {
	a := generic.MustParseDate("2026-03-27")
	b := generic.MustParseDate("2026-03-28")

	assert.True(t, a.Before(b))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, b.AfterOrEqual(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Less(t, a.String(), b.String())
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		Date generic.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-04-09"}`), &v))
	assert.Equal(t, "2026-04-09", v.Date.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-04-09"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"April 9"}`), &v))
}

func TestParseClockTime(t *testing.T) {
	c, err := generic.ParseClockTime("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, c.Minutes())
	assert.Equal(t, "07:30", c.String())

	for _, s := range []string{"7:30", "24:00", "12:60", "ab:cd", "12-30", ""} {
		_, err := generic.ParseClockTime(s)
		assert.ErrorIs(t, err, generic.ErrInvalidClockTime, s)
	}
}

func TestParseOptionalClockTime_EmptyIsAbsent(t *testing.T) {
	c, err := generic.ParseOptionalClockTime("")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, "", generic.FormatOptionalClockTime(c))

	c, err = generic.ParseOptionalClockTime("17:00")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "17:00", generic.FormatOptionalClockTime(c))
}

func TestClockTime_Format12h(t *testing.T) {
	tests := map[string]string{
		"00:05": "12:05 AM",
		"07:00": "7:00 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"23:59": "11:59 PM",
	}
	for in, want := range tests {
		assert.Equal(t, want, generic.MustParseClockTime(in).Format12h(), in)
	}
}

func TestClockTime_OrderMatchesLexicographicOrder(t *testing.T) {
	a := generic.MustParseClockTime("09:59")
	b := generic.MustParseClockTime("10:00")
	assert.Less(t, a, b)
	assert.Less(t, a.String(), b.String())
}
