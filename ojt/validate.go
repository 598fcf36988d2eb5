package ojt

import "github.com/warp/ojt-tracker/generic"

// Validation error codes.
const (
	CodeTimeInRequired        = "time_in_required"
	CodeTimeOutRequired       = "time_out_required"
	CodeTimeOutNotAfterTimeIn = "time_out_not_after_time_in"
)

// FieldError is one reason an entry was refused.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationResult is Valid iff Errors is empty.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// ValidateEntry checks a time-in/time-out pair before it is saved. Both
// missing-field errors are reported together; ordering is only checked when
// both times are present.
//
// The phase is not consulted: a pair entirely outside the shift is accepted
// and renders zero hours.
func ValidateEntry(timeIn, timeOut *generic.ClockTime, _ *Phase) ValidationResult {
	var errs []FieldError
	if timeIn == nil {
		errs = append(errs, FieldError{Field: "time_in", Code: CodeTimeInRequired, Message: "Time-in is required."})
	}
	if timeOut == nil {
		errs = append(errs, FieldError{Field: "time_out", Code: CodeTimeOutRequired, Message: "Time-out is required."})
	}
	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}

	if *timeOut <= *timeIn {
		errs = append(errs, FieldError{Field: "time_out", Code: CodeTimeOutNotAfterTimeIn, Message: "Time-out must be after time-in."})
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
