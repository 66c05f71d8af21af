package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
	"github.com/iksnae/hiitbeep/internal/state"
)

var (
	verbose     bool
	storagePath string
	langFlag    string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// skipOpenAnnotation marks commands that open the database themselves
const skipOpenAnnotation = "hiitbeep/skip-open"

// app holds the services shared by every command of one invocation
type app struct {
	cfg     internal.Config
	dbPath  string
	kv      *internal.SQLiteStore
	storage *internal.RoutineStorage
	store   *state.RoutineStore
	// loc renders output; prefs persists the language preference. They
	// differ only when --lang overrides the stored language.
	loc   *i18n.Localizer
	prefs *i18n.Localizer
}

var current *app

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hiitbeep",
	Short: "Manage HIIT routines and workout history",
	Long: `Manage saved HIIT routines and the history of completed workouts.

Routines and workouts are kept in a local SQLite database. Up to 15 routines
and the 100 most recent workouts are stored.

Quick Start:
  hiitbeep routines save --name Tabata --interval Work:20:red --interval Rest:10:green --reps 8
  hiitbeep routines list                 # List saved routines
  hiitbeep workout log <routine-id>      # Record a completed workout
  hiitbeep export --out backup.json      # Back up everything
  hiitbeep lang set en                   # Switch language`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(cmd.Annotations[skipOpenAnnotation] == "true")
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeApp()
	},
}

func setupApp(skipOpen bool) (*app, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, err
	}
	internal.SetVerbose(verbose || cfg.Verbose)

	if langFlag != "" && !i18n.IsSupported(langFlag) {
		return nil, fmt.Errorf("unsupported language: %s", langFlag)
	}

	dbPath, err := cfg.ResolveDBPath(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	internal.LogDebug("Using database %s", dbPath)

	a := &app{cfg: cfg, dbPath: dbPath}
	if skipOpen {
		a.bindLocalizer(nil)
		return a, nil
	}

	kv, err := internal.OpenSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	a.attach(kv)
	return a, nil
}

// attach wires the services on top of an open store
func (a *app) attach(kv *internal.SQLiteStore) {
	a.kv = kv
	a.storage = internal.NewRoutineStorage(kv)
	a.store = state.NewRoutineStore(a.storage)
	a.bindLocalizer(kv)
}

func (a *app) bindLocalizer(kv internal.KeyValueStore) {
	a.prefs = i18n.New(kv, a.cfg.SystemLanguage)
	a.loc = a.prefs
	if langFlag != "" {
		a.loc = i18n.New(nil, langFlag)
	}
}

func closeApp() {
	if current == nil {
		return
	}
	if current.kv != nil {
		if err := current.kv.Close(); err != nil {
			internal.LogWarn("Failed to close database: %v", err)
		}
	}
	current = nil
}

// localize renders err for display in the current language
func localize(err error) string {
	if current != nil && current.loc != nil {
		return current.loc.Error(err)
	}
	cfg, _ := internal.LoadConfig()
	return i18n.New(nil, cfg.SystemLanguage).Error(err)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() int {
	err := rootCmd.Execute()
	defer closeApp()
	if err != nil {
		internal.PrintError(localize(err))
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Path to the database file (default: per-user data directory)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Language for this command only (es, en)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
