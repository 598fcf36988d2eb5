package ojt

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEntryNotFound is returned when deleting an attendance entry that doesn't exist.
	ErrEntryNotFound = errors.New("attendance entry not found")

	// ErrHolidayNotFound is returned when deleting a holiday that doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateHoliday is returned when a holiday already exists on the date.
	ErrDuplicateHoliday = errors.New("a holiday already exists on this date")

	// ErrHolidayRequired is returned when a holiday is missing its name or date.
	ErrHolidayRequired = errors.New("holiday name and date are required")

	// ErrInvalidHolidayType is returned for a type outside regular/special.
	ErrInvalidHolidayType = errors.New("invalid holiday type")

	// ErrNoPhase is returned when a working-day entry has no governing phase.
	ErrNoPhase = errors.New("date is not within any defined schedule phase")

	// ErrDateBeforeStart is returned for entries dated before the OJT start date.
	ErrDateBeforeStart = errors.New("date is before the OJT start date")

	// ErrFutureDate is returned for entries dated after today.
	ErrFutureDate = errors.New("date is in the future")

	// ErrInvalidSchedule is returned when a schedule violates phase invariants.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidSettings is returned for out-of-range settings.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidEntry is the sentinel behind EntryValidationError.
	ErrInvalidEntry = errors.New("invalid attendance entry")

	// ErrRangeTooLarge is returned for date ranges longer than MaxRangeDays.
	ErrRangeTooLarge = errors.New("date range is too large")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PhaseError describes which phase broke which invariant.
type PhaseError struct {
	PhaseID string
	Reason  string
}

func (e *PhaseError) Error() string {
	if e.PhaseID == "" {
		return fmt.Sprintf("invalid phase: %s", e.Reason)
	}
	return fmt.Sprintf("invalid phase %q: %s", e.PhaseID, e.Reason)
}

func (e *PhaseError) Unwrap() error { return ErrInvalidSchedule }

// EntryValidationError carries the validator's result when a save is refused.
type EntryValidationError struct {
	Result ValidationResult
}

func (e *EntryValidationError) Error() string {
	msgs := make([]string, len(e.Result.Errors))
	for i, fe := range e.Result.Errors {
		msgs[i] = fe.Message
	}
	return "invalid attendance entry: " + strings.Join(msgs, " ")
}

func (e *EntryValidationError) Unwrap() error { return ErrInvalidEntry }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidEntry) ||
		errors.Is(err, ErrDuplicateHoliday) ||
		errors.Is(err, ErrHolidayRequired) ||
		errors.Is(err, ErrInvalidHolidayType) ||
		errors.Is(err, ErrNoPhase) ||
		errors.Is(err, ErrDateBeforeStart) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrInvalidSchedule) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrRangeTooLarge)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrHolidayNotFound)
}
