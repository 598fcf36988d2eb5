/*
projection.go - Forward simulation of a balance over calendar days

PURPOSE:
  Answers "on which day will this balance be used up?" when each day can
  absorb a different amount. Daily contributions are irregular (weekday
  sets, holidays, schedule phases), so there is no closed form: the engine
  walks forward one calendar day at a time.

TERMINATION:
  The walk is bounded by Horizon iterations. A capacity that never covers
  the future (no phase, no working days) makes no progress, and the engine
  reports Found=false once the horizon is exhausted.

EXAMPLE:
  engine := generic.ProjectionEngine{Capacity: calendar, Horizon: 500}
  result := engine.Project(decimal.NewFromInt(40), today)
  if result.Found {
      fmt.Println("done on", result.Date)
  }

SEE ALSO:
  - ojt/projection.go: schedule-backed capacity and completion projection
*/
package generic

import "github.com/shopspring/decimal"

// DailyCapacity reports how much a single day can consume, and whether the
// day counts at all.
type DailyCapacity interface {
	CapacityOn(day Date) (decimal.Decimal, bool)
}

// DailyCapacityFunc adapts a function to DailyCapacity.
type DailyCapacityFunc func(day Date) (decimal.Decimal, bool)

func (f DailyCapacityFunc) CapacityOn(day Date) (decimal.Decimal, bool) { return f(day) }

// ProjectionEngine consumes a balance day by day.
type ProjectionEngine struct {
	Capacity DailyCapacity
	// Maximum number of calendar days examined, starting with the start day.
	Horizon int
}

// ProjectionResult is the outcome of a Project call.
type ProjectionResult struct {
	// Day on which the balance reached zero; valid only when Found.
	Date  Date
	Found bool

	// Calendar days examined and days that consumed capacity.
	DaysWalked  int
	CountedDays int
	LeftOver    decimal.Decimal
}

// Project walks forward from start. A non-positive balance completes on start.
func (pe ProjectionEngine) Project(remaining decimal.Decimal, start Date) ProjectionResult {
	if !remaining.IsPositive() {
		return ProjectionResult{Date: start, Found: true, LeftOver: remaining}
	}

	left := remaining
	current := start
	result := ProjectionResult{}
	for i := 0; i < pe.Horizon; i++ {
		result.DaysWalked++
		if capacity, ok := pe.Capacity.CapacityOn(current); ok {
			result.CountedDays++
			left = left.Sub(capacity)
			if !left.IsPositive() {
				result.Date = current
				result.Found = true
				result.LeftOver = left
				return result
			}
		}
		current = current.AddDays(1)
	}

	result.LeftOver = left
	return result
}
