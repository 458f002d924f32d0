// Package session owns the schedule and settings being edited.
//
// Pages never hold the schedule themselves. They read copies through the
// accessors and change it by submitting mutations, so every change goes
// through one place that keeps the schedule sorted and logs the result.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/confsched/internal/logging"
	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/store"
)

// Mutation is a change to the session state.
type Mutation interface {
	apply(s *Session) error
	name() string
	target() (day, index int)
}

// AddConference appends a conference to a day.
type AddConference struct {
	Day        int
	Conference model.Conference
}

// UpdateConference replaces the conference at (Day, Index).
type UpdateConference struct {
	Day        int
	Index      int
	Conference model.Conference
}

// RemoveConference deletes the conference at (Day, Index).
type RemoveConference struct {
	Day   int
	Index int
}

// UpdateSettings replaces the settings.
type UpdateSettings struct {
	Settings model.Settings
}

func (m AddConference) apply(s *Session) error {
	if err := checkDay(m.Day); err != nil {
		return err
	}
	s.schedule.AddConference(m.Day, m.Conference)
	return nil
}
func (m AddConference) name() string             { return "add" }
func (m AddConference) target() (day, index int) { return m.Day, -1 }

func (m UpdateConference) apply(s *Session) error {
	if err := checkDay(m.Day); err != nil {
		return err
	}
	return s.schedule.UpdateConference(m.Day, m.Index, m.Conference)
}
func (m UpdateConference) name() string             { return "update" }
func (m UpdateConference) target() (day, index int) { return m.Day, m.Index }

func (m RemoveConference) apply(s *Session) error {
	if err := checkDay(m.Day); err != nil {
		return err
	}
	return s.schedule.RemoveConference(m.Day, m.Index)
}
func (m RemoveConference) name() string             { return "remove" }
func (m RemoveConference) target() (day, index int) { return m.Day, m.Index }

func (m UpdateSettings) apply(s *Session) error {
	s.settings = m.Settings
	return nil
}
func (m UpdateSettings) name() string             { return "settings" }
func (m UpdateSettings) target() (day, index int) { return 0, -1 }

// Commands come from user input, so a bad day is reported rather than
// reaching the schedule's panic.
func checkDay(day int) error {
	if day < 1 || day > model.DaysInWeek {
		return model.NewValidationError("day", fmt.Sprint(day), fmt.Sprintf("must be between 1 and %d", model.DaysInWeek))
	}
	return nil
}

// Session is the single owner of a schedule and the settings.
type Session struct {
	schedule  *model.Schedule
	settings  model.Settings
	schedules store.ScheduleStore
	prefs     store.SettingsStore

	dirty    bool
	readOnly bool
}

// Open loads the named schedule and the settings. The returned Session is
// always usable: when loading fails it starts empty, err describes the
// failure and saving is disabled so the unreadable data is not overwritten.
func Open(ctx context.Context, name string, schedules store.ScheduleStore, prefs store.SettingsStore) (*Session, error) {
	s := &Session{
		schedule:  model.NewSchedule(name),
		settings:  model.DefaultSettings(),
		schedules: schedules,
		prefs:     prefs,
	}

	var errs []error
	schedule, err := schedules.LoadSchedule(ctx, name)
	logging.LogStore("load", backendName(schedules), name, err)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to load schedule %q: %w", name, err))
	} else {
		s.schedule = schedule
	}
	if settings, err := prefs.LoadSettings(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to load settings: %w", err))
	} else {
		s.settings = settings
	}

	if len(errs) > 0 {
		s.readOnly = true
		logging.Warn("Session opened read-only")
		return s, errors.Join(errs...)
	}
	logging.Debug("Session opened")
	return s, nil
}

// Submit applies m. A failed mutation leaves the state unchanged.
func (s *Session) Submit(m Mutation) error {
	err := m.apply(s)
	day, index := m.target()
	logging.LogMutation(m.name(), day, index, err)
	if err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Name returns the schedule name.
func (s *Session) Name() string { return s.schedule.Name }

// Schedule returns a copy of the schedule.
func (s *Session) Schedule() *model.Schedule { return s.schedule.Clone() }

// Day returns a copy of the conferences on day.
func (s *Session) Day(day int) []model.Conference { return s.schedule.Day(day) }

// Conference returns the conference at (day, index).
func (s *Session) Conference(day, index int) (model.Conference, bool) {
	return s.schedule.Conference(day, index)
}

// IndexOf returns the index of c on day, or -1.
func (s *Session) IndexOf(day int, c model.Conference) int { return s.schedule.IndexOf(day, c) }

// ConferenceCountByDay returns the per-day counts, Monday first.
func (s *Session) ConferenceCountByDay() []int { return s.schedule.ConferenceCountByDay() }

// Settings returns the current settings.
func (s *Session) Settings() model.Settings { return s.settings }

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// ReadOnly reports whether saving is disabled because loading failed.
func (s *Session) ReadOnly() bool { return s.readOnly }

// Save writes the schedule and settings.
func (s *Session) Save(ctx context.Context) error {
	if s.readOnly {
		return errors.New("session is read-only: stored data could not be loaded")
	}
	err := s.schedules.SaveSchedule(ctx, s.schedule)
	logging.LogStore("save", backendName(s.schedules), s.schedule.Name, err)
	if err != nil {
		return fmt.Errorf("failed to save schedule %q: %w", s.schedule.Name, err)
	}
	if err := s.prefs.SaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.dirty = false
	return nil
}

// Close saves pending changes. Failures are logged, not returned: the
// program is exiting and has nowhere to report them.
func (s *Session) Close(ctx context.Context) {
	if !s.dirty || s.readOnly {
		return
	}
	if err := s.Save(ctx); err != nil {
		logging.Error("Failed to save on exit", zap.Error(err))
	}
}

func backendName(v any) string {
	if b, ok := v.(interface{ Backend() string }); ok {
		return b.Backend()
	}
	return fmt.Sprintf("%T", v)
}
