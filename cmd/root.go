// Package cmd implements the fuelsync CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/config"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/log"
	"github.com/theirongolddev/fuelsync/internal/pipeline"
	"github.com/theirongolddev/fuelsync/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDays    int
	flagDBPath  string
	flagQuiet   bool
	flagVerbose bool
)

// logOutput receives structured logs. The TUI points it at a file.
var logOutput io.Writer = os.Stderr

var rootCmd = &cobra.Command{
	Use:          "fuelsync",
	Short:        "Motorcycle fuel log",
	Long:         "Log fill-ups and track mileage, fuel spend and weekly efficiency trends.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Set here: runSummary reads rootCmd's flags, so it can't appear in the literal.
	rootCmd.RunE = runSummary

	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (0 = all history)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notes on stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// session bundles the resources a command works with.
type session struct {
	cfg   config.Config
	units cli.Units
	log   *log.Logger
	kv    *store.KV
	repo  *fuel.Repository
}

// openSession loads config, opens the database and loads the entry log.
// Callers must Close the session.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)
	log.SetDefault(logger)

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}
	kv, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	logger.WithComponent("store").Debug("opened database", "path", dbPath)

	repo := fuel.Open(ctx, kv, fuel.WithLogger(logger))
	if repo.Seeded() {
		note("Installed sample data (%d entries). Run `fuelsync reset` or `import` to replace it.", repo.Len())
	}

	return &session{
		cfg:   cfg,
		units: unitsFrom(cfg),
		log:   logger.WithComponent("cli"),
		kv:    kv,
		repo:  repo,
	}, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}

// load computes aggregates over the configured time window.
func (s *session) load() *pipeline.LoadResult {
	return pipeline.Load(s.repo, pipeline.WindowForDays(time.Now(), s.days()))
}

// days resolves --days against the configured default.
func (s *session) days() int {
	if rootCmd.PersistentFlags().Changed("days") {
		return flagDays
	}
	return s.cfg.General.DefaultDays
}

func (s *session) windowLabel() string {
	if d := s.days(); d > 0 {
		return fmt.Sprintf("Last %dd", d)
	}
	return "All time"
}

func newLogger(cfg config.Config) *log.Logger {
	level := log.ParseLevel(cfg.Log.Level)
	if flagVerbose {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, Component: "cli", Output: logOutput})
}

func unitsFrom(cfg config.Config) cli.Units {
	return cli.Units{
		CurrencySymbol: cfg.Units.Currency,
		DistanceUnit:   cfg.Units.Distance,
		VolumeUnit:     cfg.Units.Volume,
	}
}

// note prints a progress line on stderr unless --quiet.
func note(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

// saved reports a storage failure after a mutation has been applied in memory.
func saved(err error) error {
	if err == nil {
		return nil
	}
	if fuel.IsPersistence(err) {
		fmt.Fprintln(os.Stderr, cli.RenderWarning("Change applied but could not be saved"))
	}
	return err
}
