package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day abstraction (no time of day, no zone)
// =============================================================================

// DateLayout is the canonical textual form of a Date. Lexicographic order of
// this form equals chronological order.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value is "no date".
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day and zone of t, keeping its local calendar day.
func DateOf(t time.Time) Date { return NewDate(t.Year(), t.Month(), t.Day()) }

func Today() Date { return DateOf(time.Now()) }

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid (seed data, tests).
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Compare returns -1, 0 or +1. Usable with slices.SortFunc.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int           { return d.t.Year() }
func (d Date) Month() time.Month   { return d.t.Month() }
func (d Date) Day() int            { return d.t.Day() }
func (d Date) IsZero() bool        { return d.t.IsZero() }
func (d Date) Time() time.Time     { return d.t }
func (d Date) ISOWeekday() Weekday { return isoWeekday(d.t.Weekday()) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display formats, e.g. "Monday, February 23, 2026" and "Feb 23, 2026".
func (d Date) FormatLong() string  { return d.t.Format("Monday, January 2, 2006") }
func (d Date) FormatShort() string { return d.t.Format("Jan 2, 2006") }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the number of calendar days from `from` to `to`.
func DaysBetween(from, to Date) int { return int(to.t.Sub(from.t).Hours() / 24) }

// =============================================================================
// WEEKDAY - ISO numbering, 1=Monday ... 7=Sunday
// =============================================================================

type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func isoWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

// Short returns "Mon", "Tue", ...
func (w Weekday) Short() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}[w-1]
}

// =============================================================================
// CLOCK TIME - Wall-clock minute of day (no date, no zone)
// =============================================================================

// ClockTime is minutes since midnight. Its HH:MM form sorts chronologically.
type ClockTime int

const minutesPerDay = 24 * 60

func NewClockTime(hour, minute int) ClockTime { return ClockTime(hour*60 + minute) }

// ParseClockTime parses a strict 24-hour "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return NewClockTime(h, m), nil
}

// ParseOptionalClockTime treats the empty string as "no time".
func ParseOptionalClockTime(s string) (*ClockTime, error) {
	if s == "" {
		return nil, nil
	}
	c, err := ParseClockTime(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func (c ClockTime) Minutes() int { return int(c) }
func (c ClockTime) Hour() int    { return int(c) / 60 }
func (c ClockTime) Minute() int  { return int(c) % 60 }
func (c ClockTime) Valid() bool  { return c >= 0 && c < minutesPerDay }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

// Format12h renders "7:00 AM" / "1:00 PM".
func (c ClockTime) Format12h() string {
	period := "AM"
	if c.Hour() >= 12 {
		period = "PM"
	}
	h := c.Hour() % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute(), period)
}

func (c ClockTime) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FormatOptionalClockTime renders nil as "".
func FormatOptionalClockTime(c *ClockTime) string {
	if c == nil {
		return ""
	}
	return c.String()
}
