package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schedules (
	name       TEXT PRIMARY KEY,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS conferences (
	id         TEXT PRIMARY KEY,
	schedule   TEXT NOT NULL REFERENCES schedules(name) ON DELETE CASCADE,
	day        INTEGER NOT NULL CHECK (day BETWEEN 1 AND 7),
	position   INTEGER NOT NULL,
	title      TEXT NOT NULL,
	link       TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT NOT NULL,
	password   TEXT NOT NULL DEFAULT '',
	autostart  INTEGER NOT NULL DEFAULT 0,
	recurrence TEXT NOT NULL DEFAULT 'Every'
);
CREATE INDEX IF NOT EXISTS conferences_schedule_day ON conferences(schedule, day, position);
CREATE TABLE IF NOT EXISTS settings (
	id                 INTEGER PRIMARY KEY CHECK (id = 1),
	autostart          INTEGER NOT NULL,
	early_join_minutes INTEGER NOT NULL
);
`

// SQLiteStore keeps schedules and settings in one SQLite database. Conference
// rows get random ids; their order within a day is kept in a position column.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Backend() string { return config.BackendSQLite }

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withTransaction runs fn in a transaction, rolling back when it fails.
func (s *SQLiteStore) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSchedule(ctx context.Context, name string) (*model.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, title, link, start_time, end_time, password, autostart, recurrence
		FROM conferences
		WHERE schedule = ?
		ORDER BY day, position`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query conferences: %w", err)
	}
	defer rows.Close()

	schedule := model.NewSchedule(name)
	for rows.Next() {
		var (
			day                    int
			c                      model.Conference
			start, end, recurrence string
		)
		if err := rows.Scan(&day, &c.Title, &c.Link, &start, &end, &c.Password, &c.AutostartPermission, &recurrence); err != nil {
			return nil, fmt.Errorf("failed to scan conference: %w", err)
		}
		if c.StartTime, err = model.ParseTime(start); err != nil {
			return nil, fmt.Errorf("conference %q: %w", c.Title, err)
		}
		if c.EndTime, err = model.ParseTime(end); err != nil {
			return nil, fmt.Errorf("conference %q: %w", c.Title, err)
		}
		if c.Recurrence, err = model.ParseRecurrence(recurrence); err != nil {
			return nil, fmt.Errorf("conference %q: %w", c.Title, err)
		}
		schedule.AddConference(day, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conferences: %w", err)
	}
	return schedule, nil
}

// SaveSchedule replaces every stored conference of the schedule in one
// transaction.
func (s *SQLiteStore) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO schedules (name, updated_at) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
			schedule.Name, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to upsert schedule: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM conferences WHERE schedule = ?`, schedule.Name); err != nil {
			return fmt.Errorf("failed to clear conferences: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO conferences (id, schedule, day, position, title, link, start_time, end_time, password, autostart, recurrence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for day := 1; day <= model.DaysInWeek; day++ {
			for position, c := range schedule.Day(day) {
				_, err := stmt.ExecContext(ctx,
					uuid.NewString(),
					schedule.Name,
					day,
					position,
					c.Title,
					c.Link,
					c.StartTime.String(),
					c.EndTime.String(),
					c.Password,
					c.AutostartPermission,
					c.Recurrence.String(),
				)
				if err != nil {
					return fmt.Errorf("failed to insert conference %q: %w", c.Title, err)
				}
			}
		}
		return nil
	})
}

func (s *SQLiteStore) DeleteSchedule(ctx context.Context, name string) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM conferences WHERE schedule = ?`, name); err != nil {
			return fmt.Errorf("failed to delete conferences: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE name = ?`, name); err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) ListSchedules(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM schedules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT autostart, early_join_minutes FROM settings WHERE id = 1`,
	).Scan(&settings.Autostart, &settings.EarlyJoinMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, autostart, early_join_minutes) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			autostart = excluded.autostart,
			early_join_minutes = excluded.early_join_minutes`,
		settings.Autostart, settings.EarlyJoinMinutes)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
