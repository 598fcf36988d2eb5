// Package memory provides an in-memory ojt.Repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/warp/ojt-tracker/ojt"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu    sync.RWMutex
	seed  ojt.State
	state ojt.State
}

var _ ojt.Repository = (*Store)(nil)

// New returns a store seeded with ojt.DefaultState.
func New() *Store {
	return NewWithState(ojt.DefaultState())
}

// NewWithState seeds the store with state; Reset returns to it.
func NewWithState(state ojt.State) *Store {
	s := &Store{seed: cloneState(state)}
	s.state = cloneState(state)
	return s
}

func (s *Store) LoadSettings(_ context.Context) (ojt.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings ojt.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings = settings
	return nil
}

func (s *Store) LoadSchedule(_ context.Context) (ojt.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSchedule(s.state.Schedule), nil
}

func (s *Store) SaveSchedule(_ context.Context, schedule ojt.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Schedule = cloneSchedule(schedule)
	return nil
}

func (s *Store) LoadHolidays(_ context.Context) ([]ojt.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ojt.Holiday{}, s.state.Holidays...), nil
}

// SaveHoliday inserts or replaces by ID.
func (s *Store) SaveHoliday(_ context.Context, h ojt.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.state.Holidays, func(x ojt.Holiday) bool { return x.ID == h.ID }); i >= 0 {
		s.state.Holidays[i] = h
		return nil
	}
	s.state.Holidays = append(s.state.Holidays, h)
	return nil
}

func (s *Store) DeleteHoliday(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.state.Holidays, func(x ojt.Holiday) bool { return x.ID == id })
	if i < 0 {
		return ojt.ErrHolidayNotFound
	}
	s.state.Holidays = slices.Delete(s.state.Holidays, i, i+1)
	return nil
}

func (s *Store) ReplaceHolidays(_ context.Context, hs []ojt.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Holidays = append([]ojt.Holiday{}, hs...)
	return nil
}

func (s *Store) LoadAttendance(_ context.Context) ([]ojt.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.state.Attendance), nil
}

// SaveEntry inserts or replaces by ID.
func (s *Store) SaveEntry(_ context.Context, e ojt.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e = cloneEntry(e)
	if i := slices.IndexFunc(s.state.Attendance, func(x ojt.Entry) bool { return x.ID == e.ID }); i >= 0 {
		s.state.Attendance[i] = e
		return nil
	}
	s.state.Attendance = append(s.state.Attendance, e)
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.state.Attendance, func(x ojt.Entry) bool { return x.ID == id })
	if i < 0 {
		return ojt.ErrEntryNotFound
	}
	s.state.Attendance = slices.Delete(s.state.Attendance, i, i+1)
	return nil
}

func (s *Store) ClearAttendance(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Attendance = []ojt.Entry{}
	return nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cloneState(s.seed)
	return nil
}

// =============================================================================
// COPYING - callers never share backing arrays with the store
// =============================================================================

func cloneState(st ojt.State) ojt.State {
	return ojt.State{
		Settings:   st.Settings,
		Schedule:   cloneSchedule(st.Schedule),
		Holidays:   append([]ojt.Holiday{}, st.Holidays...),
		Attendance: cloneEntries(st.Attendance),
	}
}

func cloneSchedule(s ojt.Schedule) ojt.Schedule {
	out := make(ojt.Schedule, len(s))
	for i, p := range s {
		p.WorkDays = slices.Clone(p.WorkDays)
		out[i] = p
	}
	return out
}

func cloneEntries(es []ojt.Entry) []ojt.Entry {
	out := make([]ojt.Entry, len(es))
	for i, e := range es {
		out[i] = cloneEntry(e)
	}
	return out
}

func cloneEntry(e ojt.Entry) ojt.Entry {
	if e.TimeIn != nil {
		in := *e.TimeIn
		e.TimeIn = &in
	}
	if e.TimeOut != nil {
		out := *e.TimeOut
		e.TimeOut = &out
	}
	return e
}
