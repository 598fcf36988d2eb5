package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/ojt-tracker/api"
	"github.com/warp/ojt-tracker/factory"
	"github.com/warp/ojt-tracker/generic"
	"github.com/warp/ojt-tracker/ojt"
)

// =============================================================================
// SERVE
// =============================================================================

func (a *app) serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Port = port
			}
			handler := api.NewHandler(a.tracker, a.log)
			server := &http.Server{
				Addr:         a.cfg.Addr(),
				Handler:      api.NewRouter(handler, a.cfg.AllowedOrigins),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.WithField("addr", server.Addr).Info("server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			a.log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides OJT_PORT)")
	return cmd
}

// =============================================================================
// DASHBOARD & PROJECTION
// =============================================================================

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print progress, projection and recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.tracker.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func printDashboard(w io.Writer, d ojt.Dashboard) {
	if d.Settings.StudentName != "" {
		fmt.Fprintf(w, "Student:    %s\n", d.Settings.StudentName)
	}
	fmt.Fprintf(w, "Today:      %s\n", d.Today.FormatLong())
	fmt.Fprintf(w, "Rendered:   %s / %s h (%s%%)\n",
		d.TotalRendered.StringFixed(2), d.Settings.RequiredHours.StringFixed(2), d.PercentComplete.StringFixed(2))
	fmt.Fprintf(w, "Remaining:  %s h over %d logged days\n", d.RemainingHours.StringFixed(2), d.TotalDays)

	switch {
	case d.Complete:
		fmt.Fprintln(w, "Projected:  complete")
	case d.ProjectedEndDate != nil:
		fmt.Fprintf(w, "Projected:  %s (%d days)\n", d.ProjectedEndDate.FormatShort(), *d.DaysRemaining)
	default:
		fmt.Fprintln(w, "Projected:  beyond the schedule")
	}

	today := "non-working day"
	if d.TodayHoliday != nil {
		today = "holiday: " + d.TodayHoliday.Name
	} else if d.TodayWorking && d.TodayPhase != nil {
		today = fmt.Sprintf("%s %s-%s", d.TodayPhase.Label, d.TodayPhase.ShiftStart, d.TodayPhase.ShiftEnd)
	}
	fmt.Fprintf(w, "Today is:   %s\n", today)

	if len(d.Recent) == 0 {
		return
	}
	fmt.Fprintln(w)
	printEntries(w, d.Recent)
}

func printEntries(w io.Writer, entries []ojt.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tIN\tOUT\tHOURS\tNOTES")
	for _, e := range entries {
		in, out := generic.FormatOptionalClockTime(e.TimeIn), generic.FormatOptionalClockTime(e.TimeOut)
		if e.IsAbsence() {
			in, out = "absent", ""
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Date, in, out, e.RenderedHours.StringFixed(2), e.Notes)
	}
	tw.Flush()
}

func (a *app) projectCmd() *cobra.Command {
	var remaining, from string
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the completion date for a number of remaining hours",
		Long:  "Without --remaining the current remaining hours are used; --from defaults to today.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := a.tracker.Today()
			if from != "" {
				d, err := generic.ParseDate(from)
				if err != nil {
					return err
				}
				start = d
			}

			var hours decimal.Decimal
			if remaining == "" {
				d, err := a.tracker.Dashboard(ctx)
				if err != nil {
					return err
				}
				hours = d.RemainingHours
			} else {
				h, err := decimal.NewFromString(remaining)
				if err != nil {
					return fmt.Errorf("invalid --remaining: %w", err)
				}
				hours = h
			}

			result, err := a.tracker.Project(ctx, hours, start)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !result.Found {
				fmt.Fprintf(w, "%s h from %s cannot be completed within %d days\n", hours.StringFixed(2), start, result.DaysWalked)
				return nil
			}
			fmt.Fprintf(w, "%s h from %s completes on %s (%d working days)\n",
				hours.StringFixed(2), start, result.Date.FormatLong(), result.CountedDays)
			return nil
		},
	}
	cmd.Flags().StringVar(&remaining, "remaining", "", "Hours left to render")
	cmd.Flags().StringVar(&from, "from", "", "First day to count (YYYY-MM-DD)")
	return cmd
}

func (a *app) workingDaysCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "working-days FROM TO",
		Short: "Count expected working days in an inclusive date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := generic.ParseDate(args[0])
			if err != nil {
				return err
			}
			to, err := generic.ParseDate(args[1])
			if err != nil {
				return err
			}
			days, err := a.tracker.WorkingDays(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if list {
				for _, d := range days {
					fmt.Fprintf(w, "%s %s\n", d, d.ISOWeekday().Short())
				}
			}
			fmt.Fprintf(w, "%d working days from %s to %s\n", len(days), from, to)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print each working day")
	return cmd
}

// =============================================================================
// LOGGING ATTENDANCE
// =============================================================================

func (a *app) logCmd() *cobra.Command {
	var in, out, notes string
	var absent bool
	cmd := &cobra.Command{
		Use:   "log [DATE]",
		Short: "Log or update the attendance entry for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := factory.EntryJSON{Date: a.tracker.Today().String(), TimeIn: in, TimeOut: out, Absent: absent, Notes: notes}
			if len(args) == 1 {
				raw.Date = args[0]
			}
			input, err := a.factory.EntryInputFromJSON(raw)
			if err != nil {
				return err
			}
			entry, created, err := a.tracker.SaveEntry(cmd.Context(), input)
			if err != nil {
				return err
			}

			verb := "updated"
			if created {
				verb = "logged"
			}
			a.log.WithField("date", entry.Date.String()).Debug("entry " + verb)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s h\n", verb, entry.Date, entry.RenderedHours.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Time in (HH:MM)")
	cmd.Flags().StringVar(&out, "out", "", "Time out (HH:MM)")
	cmd.Flags().BoolVar(&absent, "absent", false, "Record an absence with no times")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

// =============================================================================
// IMPORT / EXPORT
// =============================================================================

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Apply a seed document; absent sections are left unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			seed, err := a.factory.ParseSeed(f)
			if err != nil {
				return err
			}
			n, err := applySeed(cmd.Context(), a.tracker, seed)
			if err != nil {
				return err
			}
			a.log.WithField("file", args[0]).WithField("entries", n).Info("seed imported")
			return nil
		},
	}
}

// applySeed hands a parsed seed to the tracker. Nothing is written unless
// every section and entry passes its checks.
func applySeed(ctx context.Context, t *ojt.Tracker, seed factory.Seed) (int, error) {
	return t.Import(ctx, ojt.Import{
		Settings:   seed.Settings,
		Schedule:   seed.Schedule,
		Holidays:   seed.Holidays,
		Attendance: seed.Attendance,
	})
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the full state as a seed document",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.factory.StateToJSON(state))
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ojt v%s\n", version)
		},
	}
}
