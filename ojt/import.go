package ojt

import (
	"context"
	"fmt"
)

// Import is a partial state to apply. Nil sections are left unchanged.
type Import struct {
	Settings   *Settings
	Schedule   Schedule
	Holidays   []Holiday
	Attendance []EntryInput
}

// Import applies in by first checking every section, and every attendance
// entry against the state the import would produce, then writing. Nothing is
// written when a check fails. Writes are not transactional: a repository
// error midway leaves the earlier sections applied.
//
// Attendance is replayed through the save rules, so hours are computed
// against the imported calendar. It returns the number of entries saved.
func (t *Tracker) Import(ctx context.Context, in Import) (int, error) {
	state, err := t.Load(ctx)
	if err != nil {
		return 0, err
	}

	if in.Settings != nil {
		s, err := normalizeSettings(*in.Settings)
		if err != nil {
			return 0, fmt.Errorf("settings: %w", err)
		}
		in.Settings = &s
		state.Settings = s
	}
	if in.Schedule != nil {
		if err := normalizeSchedule(in.Schedule); err != nil {
			return 0, fmt.Errorf("schedule: %w", err)
		}
		state.Schedule = in.Schedule
	}
	if in.Holidays != nil {
		if err := validateHolidays(in.Holidays); err != nil {
			return 0, fmt.Errorf("holidays: %w", err)
		}
		state.Holidays = in.Holidays
	}
	for _, input := range in.Attendance {
		if _, err := t.PrepareEntry(state, input); err != nil {
			return 0, fmt.Errorf("attendance %s: %w", input.Date, err)
		}
	}

	if in.Settings != nil {
		if err := t.repo.SaveSettings(ctx, *in.Settings); err != nil {
			return 0, fmt.Errorf("settings: %w", err)
		}
	}
	if in.Schedule != nil {
		if err := t.repo.SaveSchedule(ctx, in.Schedule); err != nil {
			return 0, fmt.Errorf("schedule: %w", err)
		}
	}
	if in.Holidays != nil {
		if err := t.repo.ReplaceHolidays(ctx, in.Holidays); err != nil {
			return 0, fmt.Errorf("holidays: %w", err)
		}
	}
	for i, input := range in.Attendance {
		if _, _, err := t.SaveEntry(ctx, input); err != nil {
			return i, fmt.Errorf("attendance %s: %w", input.Date, err)
		}
	}
	return len(in.Attendance), nil
}
