/*
main.go - Application entry point

PURPOSE:
  The ojt command. Serves the HTTP API and prints progress, projections and
  working-day counts from the terminal. Every subcommand shares one
  configuration and one SQLite store.

STARTUP SEQUENCE:
  1. Load config from environment (.env tolerated), then apply flags
  2. Configure logrus level
  3. Open SQLite store (runs migrations, seeds defaults on first run)
  4. Build the Tracker and run the subcommand

GLOBAL FLAGS:
  --db         SQLite database path (default: $OJT_DB_PATH or ojt.db)
               Use ":memory:" for a throwaway database
  --env-file   Dotenv file to read before the environment (default: .env)
  --log-level  Override $OJT_LOG_LEVEL

GRACEFUL SHUTDOWN (serve):
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection

EXAMPLES:
  ojt serve --port 3000
  ojt log 2026-04-06 --in 08:00 --out 17:00
  ojt log 2026-04-07 --absent --notes "sick"
  ojt project --remaining 120
  ojt import seed.json

SEE ALSO:
  - commands.go: Subcommand implementations
  - config/config.go: Environment variables
  - api/server.go: Router configuration
*/
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/warp/ojt-tracker/config"
	"github.com/warp/ojt-tracker/factory"
	"github.com/warp/ojt-tracker/ojt"
	"github.com/warp/ojt-tracker/store/sqlite"
)

var version = "dev"

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	store   *sqlite.Store
	tracker *ojt.Tracker
	factory *factory.ScheduleFactory

	dbPath   string
	envFile  string
	logLevel string
}

func main() {
	a := &app{log: logrus.New(), factory: factory.NewScheduleFactory()}
	if err := a.rootCmd().Execute(); err != nil {
		a.log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ojt",
		Short:         "Track on-the-job training hours against a phased schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close()
		},
	}
	root.Version = version
	root.SetVersionTemplate("ojt v{{.Version}}\n")

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides OJT_DB_PATH)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Dotenv file to load")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides OJT_LOG_LEVEL)")

	root.AddCommand(
		a.serveCmd(),
		a.dashboardCmd(),
		a.projectCmd(),
		a.workingDaysCmd(),
		a.logCmd(),
		a.importCmd(),
		a.exportCmd(),
		a.versionCmd(),
	)
	return root
}

// open loads configuration and the store. Flags win over the environment.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		level, err := logrus.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	a.cfg = cfg
	a.log.SetLevel(cfg.LogLevel)
	a.log.SetOutput(cmd.ErrOrStderr())

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	a.store = store
	a.tracker = ojt.NewTracker(store, ojt.WithProjectionHorizon(cfg.ProjectionHorizon))
	a.log.WithField("db", cfg.DBPath).Debug("database ready")
	return nil
}
