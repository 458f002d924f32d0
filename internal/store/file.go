package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/model"
)

const (
	schedulesDir = "schedules"
	settingsFile = "settings.yaml"
	fileVersion  = 1
)

// FileStore keeps schedules in <dir>/schedules/<name>.yaml and settings in
// <dir>/settings.yaml. Every write goes to a temporary file that is renamed
// into place.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. Nothing is created until the
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// scheduleDocument is the on-disk layout of a schedule.
type scheduleDocument struct {
	Version int                           `yaml:"version"`
	Name    string                        `yaml:"name"`
	Days    map[string][]model.Conference `yaml:"days,omitempty"`
}

type settingsDocument struct {
	Version  int            `yaml:"version"`
	Settings model.Settings `yaml:"settings"`
}

func (f *FileStore) Backend() string { return config.BackendYAML }

func (f *FileStore) Close() error { return nil }

func (f *FileStore) schedulePath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid schedule name %q", name)
	}
	return filepath.Join(f.dir, schedulesDir, name+".yaml"), nil
}

func (f *FileStore) LoadSchedule(_ context.Context, name string) (*model.Schedule, error) {
	path, err := f.schedulePath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.NewSchedule(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	var doc scheduleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schedule file %s: %w", path, err)
	}
	if doc.Version != fileVersion {
		return nil, fmt.Errorf("unsupported schedule file version: %d (expected %d)", doc.Version, fileVersion)
	}

	s := model.NewSchedule(name)
	for dayName, conferences := range doc.Days {
		day, ok := dayNumber(dayName)
		if !ok {
			return nil, fmt.Errorf("schedule file %s: unknown day %q", path, dayName)
		}
		for _, c := range conferences {
			s.AddConference(day, c)
		}
	}
	return s, nil
}

func (f *FileStore) SaveSchedule(_ context.Context, s *model.Schedule) error {
	path, err := f.schedulePath(s.Name)
	if err != nil {
		return err
	}

	doc := scheduleDocument{Version: fileVersion, Name: s.Name, Days: make(map[string][]model.Conference)}
	for day := 1; day <= model.DaysInWeek; day++ {
		if conferences := s.Day(day); len(conferences) > 0 {
			doc.Days[model.DayName(day)] = conferences
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	return f.writeAtomic(path, data)
}

func (f *FileStore) DeleteSchedule(_ context.Context, name string) error {
	path, err := f.schedulePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete schedule file: %w", err)
	}
	return nil
}

func (f *FileStore) ListSchedules(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dir, schedulesDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileStore) LoadSettings(_ context.Context) (model.Settings, error) {
	path := filepath.Join(f.dir, settingsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var doc settingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if doc.Version != fileVersion {
		return model.Settings{}, fmt.Errorf("unsupported settings file version: %d (expected %d)", doc.Version, fileVersion)
	}
	return doc.Settings, nil
}

func (f *FileStore) SaveSettings(_ context.Context, s model.Settings) error {
	data, err := yaml.Marshal(&settingsDocument{Version: fileVersion, Settings: s})
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return f.writeAtomic(filepath.Join(f.dir, settingsFile), data)
}

func (f *FileStore) writeAtomic(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}
	return nil
}

func dayNumber(name string) (int, bool) {
	for day := 1; day <= model.DaysInWeek; day++ {
		if strings.EqualFold(name, model.DayName(day)) {
			return day, true
		}
	}
	return 0, false
}
