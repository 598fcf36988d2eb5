package generic

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// END DATE - Bounded or open interval end
// =============================================================================

// EndDate is the inclusive last day of an interval, or open when the
// interval continues indefinitely. The zero value is open.
type EndDate struct {
	date    Date
	bounded bool
}

func OpenEnd() EndDate         { return EndDate{} }
func EndsOn(d Date) EndDate    { return EndDate{date: d, bounded: true} }
func (e EndDate) IsOpen() bool { return !e.bounded }

// Date returns the last day and true, or false for an open end.
func (e EndDate) Date() (Date, bool) { return e.date, e.bounded }

// Covers reports whether d is on or before the end.
func (e EndDate) Covers(d Date) bool { return !e.bounded || d.BeforeOrEqual(e.date) }

func (e EndDate) String() string {
	if !e.bounded {
		return "open"
	}
	return e.date.String()
}

// MarshalJSON encodes an open end as null.
func (e EndDate) MarshalJSON() ([]byte, error) {
	if !e.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(e.date.String())
}

// UnmarshalJSON accepts null, "" or a YYYY-MM-DD string.
func (e *EndDate) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(b))
	}
	if s == nil || *s == "" {
		*e = OpenEnd()
		return nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*e = EndsOn(d)
	return nil
}

// =============================================================================
// PERIOD - Inclusive calendar interval, possibly open-ended
// =============================================================================

// Period is [Start, End]. An open End means the period never finishes.
type Period struct {
	Start Date
	End   EndDate
}

// NewPeriod builds a bounded period.
func NewPeriod(start, end Date) Period { return Period{Start: start, End: EndsOn(end)} }

// Contains returns true if d is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && p.End.Covers(d)
}

// Days returns every day of a bounded period in order. Open periods and
// periods whose end precedes the start have no enumerable days.
func (p Period) Days() []Date {
	end, ok := p.End.Date()
	if !ok {
		return nil
	}
	var days []Date
	for current := p.Start; current.BeforeOrEqual(end); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Validate rejects a bounded end before the start.
func (p Period) Validate() error {
	if end, ok := p.End.Date(); ok && end.Before(p.Start) {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
	return nil
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
