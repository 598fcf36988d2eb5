/*
handlers.go - HTTP API handlers for the OJT tracker

PURPOSE:
  Exposes the Tracker via a JSON REST API. Handles HTTP request/response,
  JSON serialization and validation, and delegates to ojt.Tracker.

ENDPOINTS:
  Configuration:
    GET    /api/settings               Current settings
    PUT    /api/settings               Replace settings
    GET    /api/schedule               Phases in order
    PUT    /api/schedule               Replace the schedule

  Holidays:
    GET    /api/holidays               All holidays, by date
    POST   /api/holidays               Add one holiday
    POST   /api/holidays/defaults      Re-add missing default holidays
    DELETE /api/holidays/{id}          Remove a holiday

  Attendance:
    GET    /api/attendance             History, newest first
    POST   /api/attendance             Log or update the entry for a date
    DELETE /api/attendance/{id}        Remove an entry
    DELETE /api/attendance             Remove every entry
    GET    /api/days/{date}            Phase, holiday and prefill for a date
    POST   /api/preview                Rendered hours without saving

  Progress:
    GET    /api/dashboard              Totals, remaining and projection
    GET    /api/working-days           ?from=&to= expected working days
    GET    /api/projection             ?remaining=&from= completion date
    POST   /api/reset                  Restore all defaults

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entry or holiday not found
  - 409: Duplicate holiday date
  - 500: Internal errors (logged)

SECURITY NOTE:
  No authentication. The tracker is a single-user tool meant to run locally.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/ojt-tracker/factory"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tracker *ojt.Tracker
	Factory *factory.ScheduleFactory
	Log     logrus.FieldLogger

	validate *validator.Validate
}

// NewHandler creates a handler over tracker. A nil logger uses logrus'
// standard logger.
func NewHandler(tracker *ojt.Tracker, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	v := validator.New()
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		Tracker:  tracker,
		Factory:  factory.NewScheduleFactory(),
		Log:      log,
		validate: v,
	}
}

// =============================================================================
// SETTINGS & SCHEDULE
// =============================================================================

// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Tracker.Settings(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.SettingsToJSON(s))
}

// PUT /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req factory.SettingsJSON
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.Factory.SettingsFromJSON(req)
	if err != nil {
		h.fail(w, r, "Invalid settings", err)
		return
	}
	if err := h.Tracker.UpdateSettings(r.Context(), s); err != nil {
		h.fail(w, r, "Failed to save settings", err)
		return
	}
	h.GetSettings(w, r)
}

// GET /api/schedule
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.Tracker.Schedule(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Phases: h.Factory.ScheduleToJSON(s)})
}

// PUT /api/schedule
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.Factory.ScheduleFromJSON(req.Phases)
	if err != nil {
		h.fail(w, r, "Invalid schedule", err)
		return
	}
	if err := h.Tracker.UpdateSchedule(r.Context(), s); err != nil {
		h.fail(w, r, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Phases: h.Factory.ScheduleToJSON(s)})
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Tracker.ListHolidays(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.HolidaysToJSON(hs))
}

// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req factory.HolidayJSON
	if !h.decode(w, r, &req) {
		return
	}
	d, err := generic.ParseDate(req.Date)
	if err != nil {
		h.fail(w, r, "Invalid date", err)
		return
	}
	holiday, err := h.Tracker.AddHoliday(r.Context(), req.Name, d, ojt.HolidayType(req.Type))
	if err != nil {
		h.fail(w, r, "Failed to add holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.Factory.HolidayToJSON(holiday))
}

// POST /api/holidays/defaults
func (h *Handler) RestoreDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	added, err := h.Tracker.RestoreDefaultHolidays(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to restore holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, RestoreDefaultsResponse{Added: added})
}

// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// GET /api/attendance
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Tracker.ListEntries(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.EntriesToJSON(entries))
}

// POST /api/attendance
// Returns 201 for a new date, 200 when an existing entry was updated.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	input, err := h.Factory.EntryInputFromJSON(factory.EntryJSON{
		Date: req.Date, TimeIn: req.TimeIn, TimeOut: req.TimeOut, Absent: req.Absent, Notes: req.Notes,
	})
	if err != nil {
		h.fail(w, r, "Invalid entry", err)
		return
	}

	entry, created, err := h.Tracker.SaveEntry(r.Context(), input)
	if err != nil {
		h.fail(w, r, "Failed to save entry", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, SaveEntryResponse{Entry: h.Factory.EntryToJSON(entry), Created: created})
}

// DELETE /api/attendance/{id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/attendance
func (h *Handler) ResetAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.ResetAttendance(r.Context()); err != nil {
		h.fail(w, r, "Failed to reset attendance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/days/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	d, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, "Invalid date", err)
		return
	}
	info, err := h.Tracker.DayInfo(r.Context(), d)
	if err != nil {
		h.fail(w, r, "Failed to load day", err)
		return
	}

	dto := DayInfoDTO{
		Date:       d.String(),
		DateLabel:  d.FormatLong(),
		Weekday:    d.ISOWeekday().Short(),
		IsWorking:  info.IsWorking,
		Phase:      h.phasePtr(info.Phase),
		Holiday:    h.holidayPtr(info.Holiday),
		Existing:   h.entryPtr(info.Existing),
		PrefillIn:  generic.FormatOptionalClockTime(info.PrefillIn),
		PrefillOut: generic.FormatOptionalClockTime(info.PrefillOut),
	}
	writeJSON(w, http.StatusOK, dto)
}

// POST /api/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	input, err := h.Factory.EntryInputFromJSON(factory.EntryJSON{Date: req.Date, TimeIn: req.TimeIn, TimeOut: req.TimeOut})
	if err != nil {
		h.fail(w, r, "Invalid preview", err)
		return
	}

	b, phase, err := h.Tracker.PreviewHours(r.Context(), input.Date, input.TimeIn, input.TimeOut)
	if err != nil {
		h.fail(w, r, "Failed to preview hours", err)
		return
	}
	dto := PreviewDTO{
		Date:         input.Date.String(),
		RawMinutes:   b.RawMinutes,
		LunchMinutes: b.LunchMinutes,
		Hours:        generic.HoursFloat(b.Hours),
		Capped:       b.Capped,
	}
	if phase != nil {
		dto.PhaseID = phase.ID
		if input.TimeIn != nil && input.TimeOut != nil {
			dto.EffectiveIn = b.EffectiveIn.String()
			dto.EffectiveOut = b.EffectiveOut.String()
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// PROGRESS
// =============================================================================

// GET /api/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Tracker.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to build dashboard", err)
		return
	}

	dto := DashboardDTO{
		StudentName:     d.Settings.StudentName,
		Today:           d.Today.String(),
		RequiredHours:   generic.HoursFloat(d.Settings.RequiredHours),
		TotalRendered:   generic.HoursFloat(d.TotalRendered),
		RemainingHours:  generic.HoursFloat(d.RemainingHours),
		PercentComplete: generic.HoursFloat(d.PercentComplete),
		Complete:        d.Complete,
		TotalDays:       d.TotalDays,
		DaysRemaining:   d.DaysRemaining,
		TodayPhase:      h.phasePtr(d.TodayPhase),
		TodayWorking:    d.TodayWorking,
		TodayHoliday:    h.holidayPtr(d.TodayHoliday),
		TodayEntry:      h.entryPtr(d.TodayEntry),
		Recent:          h.Factory.EntriesToJSON(d.Recent),
	}
	if d.ProjectedEndDate != nil {
		s := d.ProjectedEndDate.String()
		dto.ProjectedEndDate = &s
		dto.ProjectedEndDateLabel = d.ProjectedEndDate.FormatShort()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GET /api/working-days?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListWorkingDays(w http.ResponseWriter, r *http.Request) {
	from, err := generic.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.fail(w, r, "Invalid from date", err)
		return
	}
	to, err := generic.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.fail(w, r, "Invalid to date", err)
		return
	}

	days, err := h.Tracker.WorkingDays(r.Context(), from, to)
	if err != nil {
		h.fail(w, r, "Failed to list working days", err)
		return
	}
	dto := WorkingDaysDTO{From: from.String(), To: to.String(), Count: len(days), Days: make([]string, len(days))}
	for i, d := range days {
		dto.Days[i] = d.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GET /api/projection?remaining=120.5&from=YYYY-MM-DD
// from defaults to today.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	remaining, err := decimal.NewFromString(q.Get("remaining"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid remaining hours", err)
		return
	}
	from := h.Tracker.Today()
	if s := q.Get("from"); s != "" {
		if from, err = generic.ParseDate(s); err != nil {
			h.fail(w, r, "Invalid from date", err)
			return
		}
	}

	result, err := h.Tracker.Project(r.Context(), remaining, from)
	if err != nil {
		h.fail(w, r, "Failed to project completion", err)
		return
	}
	dto := ProjectionDTO{
		Remaining:   generic.HoursFloat(remaining),
		From:        from.String(),
		Found:       result.Found,
		DaysWalked:  result.DaysWalked,
		CountedDays: result.CountedDays,
	}
	if result.Found {
		s := result.Date.String()
		dto.EndDate = &s
	}
	writeJSON(w, http.StatusOK, dto)
}

// POST /api/reset
func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.ResetAll(r.Context()); err != nil {
		h.fail(w, r, "Failed to reset", err)
		return
	}
	h.Log.WithField("request_id", middleware.GetReqID(r.Context())).Warn("tracker reset to defaults")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string]string, len(ve))
			for _, fe := range ve {
				fields[fe.Namespace()] = fe.Tag()
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Code: "invalid_request", Details: fields})
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return false
	}
	return true
}

// fail maps domain errors to HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	var ve *ojt.EntryValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]FieldErrorDTO, len(ve.Result.Errors))
		for i, fe := range ve.Result.Errors {
			details[i] = FieldErrorDTO{Field: fe.Field, Code: fe.Code, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: "invalid_entry", Details: details})
	case ojt.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, ojt.ErrDuplicateHoliday):
		writeError(w, http.StatusConflict, message, err)
	case ojt.IsClientError(err) || generic.IsParseError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"path":       r.URL.Path,
		}).WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, nil)
	}
}

func (h *Handler) phasePtr(p *ojt.Phase) *factory.PhaseJSON {
	if p == nil {
		return nil
	}
	pj := h.Factory.PhaseToJSON(*p)
	return &pj
}

func (h *Handler) holidayPtr(hol *ojt.Holiday) *factory.HolidayJSON {
	if hol == nil {
		return nil
	}
	hj := h.Factory.HolidayToJSON(*hol)
	return &hj
}

func (h *Handler) entryPtr(e *ojt.Entry) *factory.EntryJSON {
	if e == nil {
		return nil
	}
	ej := h.Factory.EntryToJSON(*e)
	return &ej
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "today": h.Tracker.Today().String()})
}
