// Package store persists schedules and settings.
//
// Two backends implement the same interfaces: FileStore keeps one YAML file
// per schedule next to a settings file, SQLiteStore keeps everything in a
// single SQLite database. Loading data that was never saved is not an error:
// it yields an empty schedule or default settings.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/model"
)

// ScheduleStore loads and saves schedules by name.
type ScheduleStore interface {
	LoadSchedule(ctx context.Context, name string) (*model.Schedule, error)
	SaveSchedule(ctx context.Context, s *model.Schedule) error
	DeleteSchedule(ctx context.Context, name string) error
	ListSchedules(ctx context.Context) ([]string, error)
}

// SettingsStore loads and saves the application settings.
type SettingsStore interface {
	LoadSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, s model.Settings) error
}

// Store is a backend holding both.
type Store interface {
	ScheduleStore
	SettingsStore
	Backend() string
	Close() error
}

// SQLiteFile is the database file name inside the data directory.
const SQLiteFile = "confsched.db"

// Open returns the backend named by backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case config.BackendYAML:
		return NewFileStore(dir), nil
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFile))
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
