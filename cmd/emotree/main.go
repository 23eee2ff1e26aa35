package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"emotree/cmd/emotree/ui"
	"emotree/internal/config"
	"emotree/internal/journal"
	"emotree/internal/logging"
	"emotree/internal/seed"
	"emotree/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "emotree",
	Short: "emotree - a journal that grows a tree",
	Long: `emotree is a daily journal that reads the emotion in what you write.

Each day's entry is classified into one of nine emotions, answered with a
short reflection, and hung on that month's tree as an ornament.

Write once a day, place the ornament, and look back over the month.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.emotree/config.yaml)")

	registerCommands()
}

// registerCommands wires flags and subcommands onto rootCmd.
func registerCommands() {
	monthCmd.Flags().IntVar(&monthYear, "year", 0, "Year (default: current)")
	monthCmd.Flags().IntVar(&monthNumber, "month", 0, "Month 1-12 (default: current)")
	monthCmd.Flags().BoolVar(&monthWatch, "watch", false, "Redraw when the journal changes")

	reflectCmd.Flags().IntVar(&monthYear, "year", 0, "Year (default: current)")
	reflectCmd.Flags().IntVar(&monthNumber, "month", 0, "Month 1-12 (default: current)")

	scatterCmd.Flags().IntVarP(&scatterN, "count", "n", 12, "Number of positions")

	prefsCmd.Flags().StringVar(&prefsTheme, "theme", "", "Theme: default, light, dark, night")
	prefsCmd.Flags().BoolVar(&prefsSound, "sound", true, "Enable sound")
	prefsCmd.Flags().BoolVar(&prefsAnimations, "animations", true, "Enable animations")

	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Confirm deletion")

	seedCmd.Flags().IntVar(&seedCount, "count", 0, "Number of sample entries (default: config seed.count)")

	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(scatterCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is everything a command needs for one invocation.
type runtime struct {
	workspace string
	cfg       *config.Config
	store     *store.EntryStore
	session   *journal.Session
}

// openRuntime loads config, starts category logging and opens the journal.
// When seedOnOpen is set an empty, never-seeded store receives sample entries.
func openRuntime(ctx context.Context, seedOnOpen bool) (*runtime, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := logging.Initialize(cfg.LogsDir(ws), cfg.Logging.Options()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Boot("emotree %s starting in %s", cfg.Version, ws)

	entries, err := store.Open(store.BackendOptions{
		Kind:        cfg.Storage.Backend,
		Path:        cfg.StoragePath(ws),
		Driver:      cfg.Storage.Driver,
		Key:         cfg.Storage.Key,
		BusyTimeout: cfg.GetBusyTimeout(),
	})
	if err != nil {
		logging.CloseAll()
		return nil, err
	}

	rt := &runtime{
		workspace: ws,
		cfg:       cfg,
		store:     entries,
		session:   journal.NewSession(entries, journal.WithSeeding(cfg.SeedCount(), seed.New().Generate)),
	}

	if seedOnOpen {
		added, err := rt.session.Open(ctx)
		if err != nil {
			rt.Close()
			return nil, err
		}
		if added > 0 {
			getLogger().Info("seeded sample entries", zap.Int("count", added))
		}
	}
	return rt, nil
}

// Close releases the store and flushes category logs.
func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		getLogger().Warn("failed to close store", zap.Error(err))
	}
	logging.CloseAll()
}

// styles picks the theme from the stored preferences.
func (rt *runtime) styles(ctx context.Context) ui.Styles {
	prefs, err := rt.session.Preferences(ctx)
	if err != nil {
		return ui.DefaultStyles()
	}
	return ui.NewStyles(ui.ThemeFor(prefs.Theme))
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return filepath.Abs(workspace)
	}
	return os.Getwd()
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
