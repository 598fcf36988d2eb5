/*
Package sqlite provides a SQLite-backed ojt.Repository.

PURPOSE:
  Persists settings, schedule, holidays and attendance in a single SQLite
  file. Dates are stored as YYYY-MM-DD text and clock times as HH:MM text, so
  lexical order equals chronological order. Hours are stored as decimal text.

KEY TABLES:
  settings:   single row (id = 1)
  phases:     schedule phases; position preserves list order
  holidays:   named non-working dates
  attendance: one row per logged date (idx_attendance_date is unique)

SEEDING:
  A fresh database is seeded with ojt.DefaultState. Reset wipes every table
  and seeds again.

MIGRATION:
  Versioned SQL files under sql/ are embedded and applied on New() through
  darwin; applied versions are tracked in darwin_migrations.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The pool is pinned to one connection
  so ":memory:" databases are shared by every query.

USAGE:
  store, err := sqlite.New("./ojt.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  tracker := ojt.NewTracker(store)

SEE ALSO:
  - ojt/repository.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
	"github.com/mattn/go-sqlite3"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Store implements ojt.Repository using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ojt.Repository = (*Store)(nil)

// New opens (creating if needed) the database at dbPath, applies migrations
// and seeds defaults on first use. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	store := &Store{db: db}
	if err := store.seedIfEmpty(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return store, nil
}

func migrate(db *sql.DB) error {
	return sqlmigrator.New(db, darwin.SqliteDialect{}).Migrate(sqlFiles, "sql")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// SEEDING
// =============================================================================

func (s *Store) seedIfEmpty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error { return seed(ctx, tx, ojt.DefaultState()) })
}

// Reset wipes every table and restores the seeded defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"attendance", "holidays", "phases", "settings"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return seed(ctx, tx, ojt.DefaultState())
	})
}

func seed(ctx context.Context, db execer, state ojt.State) error {
	if err := saveSettings(ctx, db, state.Settings); err != nil {
		return err
	}
	if err := insertPhases(ctx, db, state.Schedule); err != nil {
		return err
	}
	for _, h := range state.Holidays {
		if err := saveHoliday(ctx, db, h); err != nil {
			return err
		}
	}
	for _, e := range state.Attendance {
		if err := saveEntry(ctx, db, e); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) LoadSettings(ctx context.Context) (ojt.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var required, name, start string
	err := s.db.QueryRowContext(ctx,
		"SELECT required_hours, student_name, start_date FROM settings WHERE id = 1",
	).Scan(&required, &name, &start)
	if err == sql.ErrNoRows {
		return ojt.DefaultSettings(), nil
	}
	if err != nil {
		return ojt.Settings{}, err
	}

	startDate, err := generic.ParseDate(start)
	if err != nil {
		return ojt.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return ojt.Settings{
		RequiredHours: generic.MustParseDecimal(required),
		StudentName:   name,
		StartDate:     startDate,
	}, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings ojt.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSettings(ctx, s.db, settings)
}

func saveSettings(ctx context.Context, db execer, settings ojt.Settings) error {
	query := `
		INSERT INTO settings (id, required_hours, student_name, start_date, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			required_hours = excluded.required_hours,
			student_name = excluded.student_name,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query,
		settings.RequiredHours.String(),
		settings.StudentName,
		settings.StartDate.String(),
		now(),
	)
	return err
}

// =============================================================================
// SCHEDULE
// =============================================================================

func (s *Store) LoadSchedule(ctx context.Context) (ojt.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, start_date, end_date, work_days,
		       shift_start, shift_end, lunch_start, lunch_end, net_daily_hours
		FROM phases ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := ojt.Schedule{}
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, p)
	}
	return schedule, rows.Err()
}

func scanPhase(rows *sql.Rows) (ojt.Phase, error) {
	var p ojt.Phase
	var start, workDays, net string
	var end sql.NullString
	var shiftStart, shiftEnd, lunchStart, lunchEnd string
	if err := rows.Scan(&p.ID, &p.Label, &start, &end, &workDays,
		&shiftStart, &shiftEnd, &lunchStart, &lunchEnd, &net); err != nil {
		return ojt.Phase{}, err
	}

	var err error
	if p.Start, err = generic.ParseDate(start); err != nil {
		return ojt.Phase{}, fmt.Errorf("phase %s: %w", p.ID, err)
	}
	p.End = generic.OpenEnd()
	if end.Valid {
		d, err := generic.ParseDate(end.String)
		if err != nil {
			return ojt.Phase{}, fmt.Errorf("phase %s: %w", p.ID, err)
		}
		p.End = generic.EndsOn(d)
	}
	if p.WorkDays, err = parseWorkDays(workDays); err != nil {
		return ojt.Phase{}, fmt.Errorf("phase %s: %w", p.ID, err)
	}
	for _, c := range []struct {
		dst *generic.ClockTime
		src string
	}{
		{&p.ShiftStart, shiftStart}, {&p.ShiftEnd, shiftEnd},
		{&p.LunchStart, lunchStart}, {&p.LunchEnd, lunchEnd},
	} {
		if *c.dst, err = generic.ParseClockTime(c.src); err != nil {
			return ojt.Phase{}, fmt.Errorf("phase %s: %w", p.ID, err)
		}
	}
	p.NetDailyHours = generic.MustParseDecimal(net)
	return p, nil
}

// SaveSchedule replaces all phases atomically.
func (s *Store) SaveSchedule(ctx context.Context, schedule ojt.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM phases"); err != nil {
			return err
		}
		return insertPhases(ctx, tx, schedule)
	})
}

func insertPhases(ctx context.Context, db execer, schedule ojt.Schedule) error {
	query := `
		INSERT INTO phases (id, position, label, start_date, end_date, work_days,
			shift_start, shift_end, lunch_start, lunch_end, net_daily_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range schedule {
		var end sql.NullString
		if d, ok := p.End.Date(); ok {
			end = sql.NullString{String: d.String(), Valid: true}
		}
		if _, err := db.ExecContext(ctx, query,
			p.ID, i, p.Label, p.Start.String(), end, formatWorkDays(p.WorkDays),
			p.ShiftStart.String(), p.ShiftEnd.String(), p.LunchStart.String(), p.LunchEnd.String(),
			p.NetDailyHours.String(),
		); err != nil {
			return fmt.Errorf("insert phase %s: %w", p.ID, err)
		}
	}
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) LoadHolidays(ctx context.Context) ([]ojt.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, date, type FROM holidays ORDER BY date, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []ojt.Holiday{}
	for rows.Next() {
		var h ojt.Holiday
		var d, kind string
		if err := rows.Scan(&h.ID, &h.Name, &d, &kind); err != nil {
			return nil, err
		}
		if h.Date, err = generic.ParseDate(d); err != nil {
			return nil, fmt.Errorf("holiday %s: %w", h.ID, err)
		}
		h.Type = ojt.HolidayType(kind)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) SaveHoliday(ctx context.Context, h ojt.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveHoliday(ctx, s.db, h)
}

func saveHoliday(ctx context.Context, db execer, h ojt.Holiday) error {
	query := `
		INSERT INTO holidays (id, name, date, type, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			type = excluded.type
	`
	_, err := db.ExecContext(ctx, query, h.ID, h.Name, h.Date.String(), string(h.Type), now())
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ojt.ErrHolidayNotFound)
}

func (s *Store) ReplaceHolidays(ctx context.Context, hs []ojt.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM holidays"); err != nil {
			return err
		}
		for _, h := range hs {
			if err := saveHoliday(ctx, tx, h); err != nil {
				return err
			}
		}
		return nil
	})
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) LoadAttendance(ctx context.Context) ([]ojt.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, time_in, time_out, rendered_hours, notes FROM attendance ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []ojt.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (ojt.Entry, error) {
	var e ojt.Entry
	var d, rendered string
	var in, out sql.NullString
	if err := rows.Scan(&e.ID, &d, &in, &out, &rendered, &e.Notes); err != nil {
		return ojt.Entry{}, err
	}

	var err error
	if e.Date, err = generic.ParseDate(d); err != nil {
		return ojt.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.TimeIn, err = generic.ParseOptionalClockTime(in.String); err != nil {
		return ojt.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.TimeOut, err = generic.ParseOptionalClockTime(out.String); err != nil {
		return ojt.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.RenderedHours = generic.MustParseDecimal(rendered)
	return e, nil
}

// SaveEntry inserts or replaces by ID. A second entry for an already logged
// date violates idx_attendance_date.
func (s *Store) SaveEntry(ctx context.Context, e ojt.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := saveEntry(ctx, s.db, e)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("an entry for %s already exists: %w", e.Date, err)
	}
	return err
}

func saveEntry(ctx context.Context, db execer, e ojt.Entry) error {
	query := `
		INSERT INTO attendance (id, date, time_in, time_out, rendered_hours, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			time_in = excluded.time_in,
			time_out = excluded.time_out,
			rendered_hours = excluded.rendered_hours,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`
	ts := now()
	_, err := db.ExecContext(ctx, query,
		e.ID,
		e.Date.String(),
		nullClock(e.TimeIn),
		nullClock(e.TimeOut),
		generic.RoundHours(e.RenderedHours).String(),
		e.Notes,
		ts, ts,
	)
	return err
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ojt.ErrEntryNotFound)
}

func (s *Store) ClearAttendance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance")
	return err
}

// Helper functions

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func nullClock(c *generic.ClockTime) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}

// formatWorkDays stores weekdays as "1,2,3".
func formatWorkDays(days ojt.WorkDays) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func parseWorkDays(s string) (ojt.WorkDays, error) {
	if s == "" {
		return ojt.WorkDays{}, nil
	}
	parts := strings.Split(s, ",")
	days := make(ojt.WorkDays, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid work day %q", p)
		}
		days = append(days, generic.Weekday(n))
	}
	return days, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
