/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Configuration types
  (phases, holidays, settings, entries) reuse the factory schema so the API
  and seed files speak the same format.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Small response wrappers

VALIDATION:
  Request types carry go-playground/validator tags. Handlers run them
  before any domain call; format and invariant checks then happen in
  factory and ojt.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: PhaseJSON, HolidayJSON, SettingsJSON, EntryJSON
*/
package api

import (
	"github.com/warp/ojt-tracker/factory"
)

// =============================================================================
// REQUESTS
// =============================================================================

// ScheduleRequest replaces the schedule. Phase order is significant.
type ScheduleRequest struct {
	Phases []factory.PhaseJSON `json:"phases" validate:"dive"`
}

// EntryRequest logs (or re-logs) one date. Empty times mean "not given".
type EntryRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeIn  string `json:"time_in" validate:"omitempty,datetime=15:04"`
	TimeOut string `json:"time_out" validate:"omitempty,datetime=15:04"`
	Absent  bool   `json:"absent"`
	Notes   string `json:"notes" validate:"max=1000"`
}

// PreviewRequest asks for rendered hours without saving.
type PreviewRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeIn  string `json:"time_in" validate:"omitempty,datetime=15:04"`
	TimeOut string `json:"time_out" validate:"omitempty,datetime=15:04"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type ScheduleDTO struct {
	Phases []factory.PhaseJSON `json:"phases"`
}

type SaveEntryResponse struct {
	Entry   factory.EntryJSON `json:"entry"`
	Created bool              `json:"created"`
}

// PreviewDTO shows how a time pair would be credited.
type PreviewDTO struct {
	Date         string  `json:"date"`
	PhaseID      string  `json:"phase_id,omitempty"`
	EffectiveIn  string  `json:"effective_in,omitempty"`
	EffectiveOut string  `json:"effective_out,omitempty"`
	RawMinutes   int     `json:"raw_minutes"`
	LunchMinutes int     `json:"lunch_minutes"`
	Hours        float64 `json:"hours"`
	Capped       bool    `json:"capped"`
}

// DayInfoDTO describes a date for the entry form.
type DayInfoDTO struct {
	Date       string               `json:"date"`
	DateLabel  string               `json:"date_label"`
	Weekday    string               `json:"weekday"`
	Phase      *factory.PhaseJSON   `json:"phase"`
	IsWorking  bool                 `json:"is_working"`
	Holiday    *factory.HolidayJSON `json:"holiday"`
	Existing   *factory.EntryJSON   `json:"existing"`
	PrefillIn  string               `json:"prefill_in,omitempty"`
	PrefillOut string               `json:"prefill_out,omitempty"`
}

// DashboardDTO is the progress summary.
type DashboardDTO struct {
	StudentName     string  `json:"student_name,omitempty"`
	Today           string  `json:"today"`
	RequiredHours   float64 `json:"required_hours"`
	TotalRendered   float64 `json:"total_rendered"`
	RemainingHours  float64 `json:"remaining_hours"`
	PercentComplete float64 `json:"percent_complete"`
	Complete        bool    `json:"complete"`
	TotalDays       int     `json:"total_days"`

	ProjectedEndDate      *string `json:"projected_end_date"`
	ProjectedEndDateLabel string  `json:"projected_end_date_label,omitempty"`
	DaysRemaining         *int    `json:"days_remaining"`

	TodayPhase   *factory.PhaseJSON   `json:"today_phase"`
	TodayWorking bool                 `json:"today_working"`
	TodayHoliday *factory.HolidayJSON `json:"today_holiday"`
	TodayEntry   *factory.EntryJSON   `json:"today_entry"`

	Recent []factory.EntryJSON `json:"recent"`
}

type WorkingDaysDTO struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Count int      `json:"count"`
	Days  []string `json:"days"`
}

type ProjectionDTO struct {
	Remaining   float64 `json:"remaining"`
	From        string  `json:"from"`
	Found       bool    `json:"found"`
	EndDate     *string `json:"end_date"`
	DaysWalked  int     `json:"days_walked"`
	CountedDays int     `json:"counted_days"`
}

type RestoreDefaultsResponse struct {
	Added int `json:"added"`
}

// FieldErrorDTO is one entry-validation failure.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
