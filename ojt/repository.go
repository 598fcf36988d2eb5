/*
repository.go - Persistence contract for tracker state

PURPOSE:
  The engine works on explicit values; the Repository is the only place
  state lives between calls. It holds four logical collections: settings,
  attendance, holidays and schedule.

SEEDING:
  Implementations seed defaults (DefaultState) the first time they are
  opened, and Reset restores that seed.

IMPLEMENTATIONS:
  - store/memory: in-memory, for tests and throwaway sessions
  - store/sqlite: SQLite file or ":memory:"

SEE ALSO:
  - tracker.go: the service built on this contract
  - defaults.go: seed data
*/
package ojt

import "context"

type Repository interface {
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	// LoadSchedule returns phases in their configured order.
	LoadSchedule(ctx context.Context) (Schedule, error)
	// SaveSchedule replaces the whole schedule, preserving order.
	SaveSchedule(ctx context.Context, s Schedule) error

	LoadHolidays(ctx context.Context) ([]Holiday, error)
	SaveHoliday(ctx context.Context, h Holiday) error
	// DeleteHoliday returns ErrHolidayNotFound for unknown IDs.
	DeleteHoliday(ctx context.Context, id string) error
	ReplaceHolidays(ctx context.Context, hs []Holiday) error

	LoadAttendance(ctx context.Context) ([]Entry, error)
	// SaveEntry inserts or replaces by entry ID.
	SaveEntry(ctx context.Context, e Entry) error
	// DeleteEntry returns ErrEntryNotFound for unknown IDs.
	DeleteEntry(ctx context.Context, id string) error
	ClearAttendance(ctx context.Context) error

	// Reset drops everything and re-seeds defaults.
	Reset(ctx context.Context) error
}
