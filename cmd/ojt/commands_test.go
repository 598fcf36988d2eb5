package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/factory"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
	"github.com/warp/ojt-tracker/store/memory"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	a := &app{log: log, factory: factory.NewScheduleFactory()}

	var out bytes.Buffer
	root := a.rootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "ojt vdev\n", run(t, "version"))
}

func TestWorkingDaysCommand(t *testing.T) {
	out := run(t, "--db", ":memory:", "working-days", "2026-04-06", "2026-04-12", "--list")

	assert.Contains(t, out, "2026-04-10 Fri")
	assert.NotContains(t, out, "2026-04-09")
	assert.Contains(t, out, "4 working days from 2026-04-06 to 2026-04-12")
}

func TestProjectCommand(t *testing.T) {
	out := run(t, "--db", ":memory:", "project", "--remaining", "16", "--from", "2026-04-06")
	assert.Contains(t, out, "completes on Tuesday, April 7, 2026")
}

func TestLogAndDashboard_SharedFile(t *testing.T) {
	// GIVEN: a file database
	db := filepath.Join(t.TempDir(), "ojt.db")

	// WHEN: an entry is logged and then the dashboard is printed
	out := run(t, "--db", db, "log", "2026-02-02", "--in", "07:00", "--out", "18:00")
	assert.Equal(t, "logged 2026-02-02: 10.00 h\n", out)

	out = run(t, "--db", db, "dashboard")

	// THEN: the dashboard sees it
	assert.Contains(t, out, "Rendered:   10.00 / 486.00 h")
	assert.Contains(t, out, "2026-02-02")
}

func TestApplySeed(t *testing.T) {
	ctx := context.Background()
	tr := ojt.NewTracker(memory.New(), ojt.WithClock(func() generic.Date { return generic.MustParseDate("2026-06-30") }))
	doc := `{
		"settings": {"required_hours": 300, "student_name": "Ana", "start_date": "2026-06-01"},
		"holidays": [{"name": "Founding Day", "date": "2026-06-24", "type": "special"}],
		"attendance": [
			{"date": "2026-06-23", "time_in": "08:00", "time_out": "17:00"},
			{"date": "2026-06-24", "time_in": "08:00", "time_out": "17:00"}
		]
	}`
	seed, err := factory.NewScheduleFactory().ParseSeed(strings.NewReader(doc))
	require.NoError(t, err)

	n, err := applySeed(ctx, tr, seed)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	d, err := tr.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", d.Settings.StudentName)
	// The imported holiday makes Jun 24 worth nothing.
	assert.Equal(t, "8", d.TotalRendered.String())

	// Schedule was absent and stays the default.
	schedule, err := tr.Schedule(ctx)
	require.NoError(t, err)
	assert.Len(t, schedule, 2)
}

func TestApplySeed_BadEntry_WritesNothing(t *testing.T) {
	// GIVEN: a seed with valid settings and an entry in the future
	ctx := context.Background()
	tr := ojt.NewTracker(memory.New(), ojt.WithClock(func() generic.Date { return generic.MustParseDate("2026-04-15") }))
	settings := ojt.DefaultSettings()
	settings.StudentName = "Ana"
	seed := factory.Seed{
		Settings:   &settings,
		Attendance: []ojt.EntryInput{{Date: generic.MustParseDate("2026-05-01")}},
	}

	// WHEN: it is applied
	_, err := applySeed(ctx, tr, seed)

	// THEN: the entry is rejected and the settings were not written
	assert.ErrorIs(t, err, ojt.ErrFutureDate)
	got, err := tr.Settings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.StudentName)
}
