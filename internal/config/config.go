package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "confsched"
	configFile = "config.yaml"

	// CurrentVersion is the config file format this build reads and writes.
	CurrentVersion = 1
)

// Storage backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// Config is the application configuration file.
type Config struct {
	Version int `yaml:"version"`

	// TickRate and FrameRate are in events per second.
	TickRate  float64 `yaml:"tick_rate"`
	FrameRate float64 `yaml:"frame_rate"`

	// ScheduleName selects which stored schedule is opened.
	ScheduleName string  `yaml:"schedule"`
	Storage      Storage `yaml:"storage"`

	// Keybindings maps a mode name to key sequences and the action each one
	// triggers, e.g. Schedule: {"<q>": "Quit", "<g><g>": "Help"}.
	Keybindings Keybindings `yaml:"keybindings"`
}

// Storage selects where schedules and settings are persisted.
type Storage struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"` // empty means the config directory
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/confsched or $HOME/.config/confsched
//   - macOS: $HOME/.config/confsched
//   - Windows: %LOCALAPPDATA%\confsched
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:      CurrentVersion,
		TickRate:     4,
		FrameRate:    30,
		ScheduleName: "default",
		Storage:      Storage{Backend: BackendYAML},
		Keybindings:  DefaultKeybindings(),
	}
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields Default(). Key bindings in the file are merged
// over the defaults, so a file only needs to list the bindings it changes.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if file.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", file.Version, CurrentVersion)
	}

	if file.TickRate != 0 {
		cfg.TickRate = file.TickRate
	}
	if file.FrameRate != 0 {
		cfg.FrameRate = file.FrameRate
	}
	if file.ScheduleName != "" {
		cfg.ScheduleName = file.ScheduleName
	}
	if file.Storage.Backend != "" {
		cfg.Storage.Backend = file.Storage.Backend
	}
	cfg.Storage.DataDir = file.Storage.DataDir
	cfg.Keybindings.Merge(file.Keybindings)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a file or flag may have set.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", c.TickRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %v", c.FrameRate)
	}
	if c.ScheduleName == "" {
		return fmt.Errorf("schedule name must not be empty")
	}
	switch c.Storage.Backend {
	case BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendYAML, BackendSQLite)
	}
	return nil
}

// DataDir returns the directory holding schedules and settings.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return GetConfigDir()
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# confsched configuration file
#
# Key sequences are written as <key> chords, e.g. <q>, <ctrl+c>, <g><g>.
# Actions: Quit, Suspend, Help, ClearScreen, ChangeMode(Schedule|Settings|Edit)
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
