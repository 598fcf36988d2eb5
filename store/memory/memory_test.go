package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
	"github.com/warp/ojt-tracker/store/memory"
)

func TestMemory_SeededWithDefaults(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	settings, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.RequiredHours.Equal(decimal.NewFromInt(486)))

	schedule, err := store.LoadSchedule(ctx)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "phase1", schedule[0].ID)

	holidays, err := store.LoadHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, len(ojt.DefaultHolidays()))
}

func TestMemory_SaveEntry_UpsertsByID(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	in, out := generic.MustParseClockTime("08:00"), generic.MustParseClockTime("17:00")

	e := ojt.Entry{ID: "e1", Date: generic.MustParseDate("2026-04-06"), TimeIn: &in, TimeOut: &out, RenderedHours: decimal.NewFromInt(8)}
	require.NoError(t, store.SaveEntry(ctx, e))

	e.RenderedHours = decimal.NewFromInt(4)
	require.NoError(t, store.SaveEntry(ctx, e))

	entries, err := store.LoadAttendance(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].RenderedHours.Equal(decimal.NewFromInt(4)))
}

func TestMemory_Delete_UnknownIDs(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	assert.ErrorIs(t, store.DeleteEntry(ctx, "missing"), ojt.ErrEntryNotFound)
	assert.ErrorIs(t, store.DeleteHoliday(ctx, "missing"), ojt.ErrHolidayNotFound)
}

func TestMemory_LoadedValuesAreCopies(t *testing.T) {
	// GIVEN: a loaded schedule that the caller mutates
	// THEN: the stored schedule is unchanged
	store := memory.New()
	ctx := context.Background()

	schedule, err := store.LoadSchedule(ctx)
	require.NoError(t, err)
	schedule[0].WorkDays[0] = generic.Sunday
	schedule[0].Label = "changed"

	again, err := store.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, generic.Monday, again[0].WorkDays[0])
	assert.Equal(t, "Phase 1", again[0].Label)
}

func TestMemory_Reset_RestoresSeed(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveSettings(ctx, ojt.Settings{RequiredHours: decimal.NewFromInt(100), StartDate: generic.MustParseDate("2026-05-01")}))
	require.NoError(t, store.SaveEntry(ctx, ojt.Entry{ID: "e1", Date: generic.MustParseDate("2026-05-04")}))
	require.NoError(t, store.ReplaceHolidays(ctx, nil))

	require.NoError(t, store.Reset(ctx))

	settings, _ := store.LoadSettings(ctx)
	entries, _ := store.LoadAttendance(ctx)
	holidays, _ := store.LoadHolidays(ctx)
	assert.True(t, settings.RequiredHours.Equal(decimal.NewFromInt(486)))
	assert.Empty(t, entries)
	assert.Len(t, holidays, len(ojt.DefaultHolidays()))
}
