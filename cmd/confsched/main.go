// Confsched is a terminal editor for a weekly schedule of conference calls.
//
// Running without arguments opens the interactive schedule. The schedule is
// organized by day; each conference has a start and end time, a link, an
// optional password and a recurrence (every week, even or odd ISO weeks).
// Conferences that allow it can be opened automatically shortly before they
// start.
//
// Usage:
//
//	confsched [command] [flags]
//
// See 'confsched --help' for available commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/confsched/internal/app"
	"github.com/muurk/confsched/internal/autostart"
	"github.com/muurk/confsched/internal/browser"
	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/logging"
	"github.com/muurk/confsched/internal/session"
	"github.com/muurk/confsched/internal/store"
	"github.com/muurk/confsched/internal/tui"
	"github.com/muurk/confsched/internal/tui/page"
	"github.com/muurk/confsched/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath   string
	tickRate     float64
	frameRate    float64
	storeBackend string
	dataDir      string
	scheduleName string
	logLevel     string
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "confsched",
	Short: "Weekly conference call schedule",
	Long: `An interactive terminal schedule of your weekly conference calls.

Browse the week day by day, add, edit and delete calls, open a call's link in
the browser, and let calls that allow it open automatically a few minutes
before they start.

If no command is specified, the interactive schedule opens.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := logPath()
		if err != nil {
			return err
		}
		return logging.Initialize(logLevel, path)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runTUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/confsched/config.yaml)")
	flags.Float64Var(&tickRate, "tick-rate", 4, "Tick rate, i.e. number of ticks per second")
	flags.Float64Var(&frameRate, "frame-rate", 30, "Frame rate, i.e. number of frames per second")
	flags.StringVar(&storeBackend, "store", config.BackendYAML, "Storage backend (yaml, sqlite)")
	flags.StringVar(&dataDir, "data-dir", "", "Directory holding schedules and settings (default: config directory)")
	flags.StringVar(&scheduleName, "schedule", "default", "Name of the schedule to open")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	flags.StringVar(&logFile, "log-file", "", "Log file (default: confsched.log in the config directory)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("confsched %s\n", version.Full())
	},
}

func logPath() (string, error) {
	if logFile != "" {
		return logFile, nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "confsched.log"), nil
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		cfg.TickRate = tickRate
	}
	if flags.Changed("frame-rate") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("store") {
		cfg.Storage.Backend = storeBackend
	}
	if flags.Changed("data-dir") {
		cfg.Storage.DataDir = dataDir
	}
	if flags.Changed("schedule") {
		cfg.ScheduleName = scheduleName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Storage.Backend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store in %s: %w", cfg.Storage.Backend, dir, err)
	}
	return st, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error("Failed to close store", zap.Error(err))
		}
	}()

	ctx := cmd.Context()
	sess, loadErr := session.Open(ctx, cfg.ScheduleName, st, st)
	defer sess.Close(ctx)

	home := page.NewHome(page.NewSchedulePage(sess, browser.System), page.NewSettingsPage(sess))
	watcher := autostart.New(sess, browser.System)

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}
	a, err := app.New(cfg, tui.Rect{Width: width, Height: height}, home, watcher)
	if err != nil {
		return err
	}
	if loadErr != nil {
		home.Update(tui.Errorf("%v (changes will not be saved)", loadErr))
	}

	logging.Info("Starting", zap.String("schedule", cfg.ScheduleName), zap.String("backend", st.Backend()))
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithFPS(int(cfg.FrameRate)),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
