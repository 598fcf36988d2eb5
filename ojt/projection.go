package ojt

import (
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// DefaultProjectionHorizon is how many calendar days a projection examines.
const DefaultProjectionHorizon = 500

// ProjectCompletion walks forward from start, spending each working day's
// net daily hours, and returns the first date on which the remaining balance
// reaches zero. Non-positive remaining hours complete on start. Returns false
// when maxDays calendar days pass without completion.
func ProjectCompletion(remaining decimal.Decimal, start generic.Date, phases []Phase, holidays []Holiday, maxDays int) (generic.Date, bool) {
	return NewCalendar(phases, holidays).ProjectCompletion(remaining, start, maxDays)
}

func (c *Calendar) ProjectCompletion(remaining decimal.Decimal, start generic.Date, maxDays int) (generic.Date, bool) {
	result := c.Project(remaining, start, maxDays)
	return result.Date, result.Found
}

// Project exposes the full simulation result.
func (c *Calendar) Project(remaining decimal.Decimal, start generic.Date, maxDays int) generic.ProjectionResult {
	engine := generic.ProjectionEngine{Capacity: c, Horizon: maxDays}
	return engine.Project(remaining, start)
}
