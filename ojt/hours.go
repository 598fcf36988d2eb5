package ojt

import (
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// HoursBreakdown shows how a rendered-hours value was reached.
type HoursBreakdown struct {
	EffectiveIn  generic.ClockTime
	EffectiveOut generic.ClockTime
	RawMinutes   int
	LunchMinutes int

	// Rounded net hours after the daily cap.
	Hours  decimal.Decimal
	Capped bool
}

// CalculateHours applies the shift clamp, the lunch deduction and the daily
// cap. Missing times, a missing phase or an empty clamped window give zero.
func CalculateHours(timeIn, timeOut *generic.ClockTime, phase *Phase) HoursBreakdown {
	if timeIn == nil || timeOut == nil || phase == nil {
		return HoursBreakdown{Hours: decimal.Zero}
	}

	effIn := max(*timeIn, phase.ShiftStart)
	effOut := min(*timeOut, phase.ShiftEnd)
	b := HoursBreakdown{EffectiveIn: effIn, EffectiveOut: effOut, Hours: decimal.Zero}
	if effOut <= effIn {
		return b
	}

	b.RawMinutes = effOut.Minutes() - effIn.Minutes()
	// Intersection of [effIn, effOut] with [lunchStart, lunchEnd].
	b.LunchMinutes = max(0, min(effOut, phase.LunchEnd).Minutes()-max(effIn, phase.LunchStart).Minutes())

	net := generic.HoursFromMinutes(b.RawMinutes - b.LunchMinutes)
	if net.GreaterThan(phase.NetDailyHours) {
		net = phase.NetDailyHours
		b.Capped = true
	}
	b.Hours = generic.RoundHours(generic.MaxZero(net))
	return b
}

// RenderedHours is the net billable hours for one day, rounded to hundredths.
// It never fails and never returns a negative value.
func RenderedHours(timeIn, timeOut *generic.ClockTime, phase *Phase) decimal.Decimal {
	return CalculateHours(timeIn, timeOut, phase).Hours
}
