/*
Package generic provides the calendar and quantity primitives the OJT engine
is built on.

KEY CONCEPTS:
  - Date:       a calendar day, textual form YYYY-MM-DD
  - ClockTime:  a wall-clock minute of day, textual form HH:MM
  - EndDate:    the bounded-or-open end of an interval
  - Period:     an inclusive date interval
  - Hours:      decimal quantities, rounded to hundredths for display and storage

DESIGN PRINCIPLES:
  1. Precision: hours use decimal.Decimal so sums of many entries never drift
  2. No zones: dates and clock times carry no timezone; comparisons are
     calendar/minute comparisons
  3. Explicit options: an open interval end is a value, not a nil pointer

SEE ALSO:
  - period.go: Period and EndDate
  - projection.go: forward simulation over daily capacities
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Decimal quantities
// =============================================================================

// HoursPrecision is the number of decimal places hours are rounded to.
const HoursPrecision = 2

var minutesPerHour = decimal.NewFromInt(60)

// HoursFromMinutes converts whole minutes to (unrounded) hours.
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// RoundHours rounds to the nearest hundredth, halves away from zero.
func RoundHours(h decimal.Decimal) decimal.Decimal { return h.Round(HoursPrecision) }

func NewHours(value float64) decimal.Decimal { return decimal.NewFromFloat(value) }

func NewHoursFromInt(value int) decimal.Decimal { return decimal.NewFromInt(int64(value)) }

// MustParseDecimal parses s, returning zero for malformed input.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MaxZero clamps negative quantities to zero.
func MaxZero(h decimal.Decimal) decimal.Decimal {
	if h.IsNegative() {
		return decimal.Zero
	}
	return h
}

// HoursFloat is the lossy float form used by JSON responses.
func HoursFloat(h decimal.Decimal) float64 { return h.Round(HoursPrecision).InexactFloat64() }
