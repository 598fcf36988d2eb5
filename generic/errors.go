/*
errors.go - Error types for calendar and quantity parsing

Domain packages wrap these with their own context:

	if errors.Is(err, generic.ErrInvalidDate) { ... }

SEE ALSO:
  - ojt/errors.go: tracker-level errors
*/
package generic

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned for text that is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid date (use YYYY-MM-DD)")

	// ErrInvalidClockTime is returned for text that is not a 24h HH:MM time.
	ErrInvalidClockTime = errors.New("invalid clock time (use HH:MM)")

	// ErrInvalidPeriod is returned when a bounded period ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// IsParseError returns true if err comes from parsing a date or clock time.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidClockTime)
}
