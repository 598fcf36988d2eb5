package ojt

import (
	"github.com/shopspring/decimal"
	"github.com/warp/ojt-tracker/generic"
)

// Summary aggregates an attendance history.
type Summary struct {
	TotalRendered decimal.Decimal
	// Entries with more than zero rendered hours.
	TotalDays int
}

// Summarize totals rendered hours and counts attended days. Order of entries
// does not matter.
func Summarize(entries []Entry) Summary {
	total := decimal.Zero
	days := 0
	for _, e := range entries {
		total = total.Add(e.RenderedHours)
		if e.RenderedHours.IsPositive() {
			days++
		}
	}
	return Summary{TotalRendered: generic.RoundHours(total), TotalDays: days}
}
